package render

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestBreadcrumbs(t *testing.T) {
	root := filepath.Join("/", "out", "html")
	tests := []struct {
		name string
		path string
		want []Link
	}{
		{
			name: "nested playlist page",
			path: filepath.Join(root, "A", "B", "P.html"),
			want: []Link{
				{Label: "iTunes", Href: "../../index.html"},
				{Label: "A", Href: "../index.html"},
				{Label: "B", Href: "index.html"},
				{Label: "P"},
			},
		},
		{
			name: "top-level playlist page",
			path: filepath.Join(root, "Top.html"),
			want: []Link{
				{Label: "iTunes", Href: "index.html"},
				{Label: "Top"},
			},
		},
		{
			name: "root index",
			path: filepath.Join(root, "index.html"),
			want: []Link{{Label: "iTunes"}},
		},
		{
			name: "nested index",
			path: filepath.Join(root, "A", "B", "index.html"),
			want: []Link{
				{Label: "iTunes", Href: "../../index.html"},
				{Label: "A", Href: "../index.html"},
				{Label: "B"},
			},
		},
		{
			name: "outside root",
			path: filepath.Join("/", "elsewhere", "P.html"),
			want: []Link{{Label: "iTunes"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Breadcrumbs(root, tt.path, "iTunes")
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Breadcrumbs = %+v, want %+v", got, tt.want)
			}
		})
	}
}
