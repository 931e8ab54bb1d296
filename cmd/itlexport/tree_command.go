package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"itlexport/internal/config"
	"itlexport/internal/hierarchy"
	"itlexport/internal/library"
)

func newTreeCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the folder and playlist hierarchy without writing files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			lib, err := library.Load(cfg.Paths.LibraryPath)
			if err != nil {
				return err
			}
			items, stats, err := buildTree(cfg, lib)
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd, map[string]any{
					"items":    items,
					"filtered": stats.Filtered,
					"orphaned": stats.Orphaned,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTree(cfg.HTML.Title, items))
			fmt.Fprintf(out, "\n%d folders, %d playlists (%d filtered, %d orphaned)\n",
				stats.Folders, stats.Playlists, stats.Filtered, stats.Orphaned)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output the hierarchy as JSON")
	return cmd
}

// buildTree resolves the hierarchy against a virtual root and nests the
// targets by path. Siblings keep document order.
func buildTree(cfg *config.Config, lib *library.Library) ([]*treeItem, hierarchy.Stats, error) {
	root := string(filepath.Separator)
	resolver := hierarchy.New(root,
		hierarchy.WithDirMaker(nil),
		hierarchy.WithRootPlaylists(cfg.Convert.RootPlaylists),
	)

	var top []*treeItem
	byPath := map[string]*treeItem{}
	stats, err := resolver.Resolve(lib.Playlists, func(target hierarchy.Target) error {
		item := &treeItem{
			Label:  filepath.Base(target.Path),
			Folder: target.Kind == hierarchy.KindFolder,
		}
		if !item.Folder {
			item.Tracks = len(target.Playlist.Items)
		}
		if parent, ok := byPath[filepath.Dir(target.Path)]; ok {
			parent.Children = append(parent.Children, item)
		} else {
			top = append(top, item)
		}
		if item.Folder {
			byPath[target.Path] = item
		}
		return nil
	})
	return top, stats, err
}
