package lindle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinLinksToFolders(t *testing.T) {
	l := func(id, folder string) Link {
		return Link{ID: id, Name: "name-" + id, URL: "https://example.com/" + id, Folder: folder}
	}
	f := func(id string) Folder {
		return Folder{ID: id, Name: "folder-" + id, SharedEmails: []string{}, Links: []Link{}}
	}

	tests := []struct {
		name    string
		folders []Folder
		links   []Link
		want    [][]Link
	}{
		{
			name:    "no folders",
			folders: nil,
			links:   []Link{l("l1", "f1")},
			want:    [][]Link{},
		},
		{
			name:    "no links",
			folders: []Folder{f("f1"), f("f2")},
			links:   nil,
			want:    [][]Link{{}, {}},
		},
		{
			name:    "order is preserved",
			folders: []Folder{f("f1"), f("f2")},
			links:   []Link{l("l3", "f1"), l("l1", "f2"), l("l2", "f1")},
			want: [][]Link{
				{l("l3", "f1"), l("l2", "f1")},
				{l("l1", "f2")},
			},
		},
		{
			name:    "orphan links are dropped",
			folders: []Folder{f("f1")},
			links:   []Link{l("l1", "missing"), l("l2", "f1"), l("l3", "")},
			want:    [][]Link{{l("l2", "f1")}},
		},
		{
			name:    "duplicate folder ids get links once",
			folders: []Folder{f("f1"), f("f1")},
			links:   []Link{l("l1", "f1")},
			want:    [][]Link{{l("l1", "f1")}, {}},
		},
		{
			name:    "folder order follows input",
			folders: []Folder{f("f2"), f("f1")},
			links:   []Link{l("l1", "f1"), l("l2", "f2")},
			want: [][]Link{
				{l("l2", "f2")},
				{l("l1", "f1")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JoinLinksToFolders(tt.folders, tt.links)
			assert.Len(t, got, len(tt.folders))

			seen := make(map[string]bool)
			for i, folder := range got {
				assert.Equal(t, tt.folders[i].ID, folder.ID)
				assert.Equal(t, tt.folders[i].Name, folder.Name)
				assert.NotNil(t, folder.Links)
				assert.Equal(t, tt.want[i], folder.Links)

				for _, link := range folder.Links {
					assert.Equal(t, folder.ID, link.Folder)
					assert.False(t, seen[link.ID], "link %s listed twice", link.ID)
					seen[link.ID] = true
				}
			}
		})
	}
}

func TestJoinLinksToFoldersDoesNotModifyInput(t *testing.T) {
	folders := []Folder{{ID: "f1", Links: []Link{}}}
	links := []Link{{ID: "l1", Folder: "f1"}}

	joined := JoinLinksToFolders(folders, links)

	assert.Empty(t, folders[0].Links)
	assert.Len(t, joined[0].Links, 1)

	// Joined links do not alias the input slice.
	joined[0].Links[0].Name = "changed"
	assert.Empty(t, links[0].Name)
}

