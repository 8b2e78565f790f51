package lindle

// JoinLinksToFolders returns a copy of folders where each folder's Links is
// the sub-sequence of links whose Folder equals the folder's ID, in their
// original order. Links that match no folder are dropped. If the same folder
// ID appears more than once, only its first occurrence receives the links so
// that no link is listed twice. The inputs are not modified.
func JoinLinksToFolders(folders []Folder, links []Link) []Folder {
	byFolder := make(map[string][]Link, len(folders))
	for _, link := range links {
		byFolder[link.Folder] = append(byFolder[link.Folder], link)
	}

	joined := make([]Folder, len(folders))
	claimed := make(map[string]bool, len(folders))
	for i, folder := range folders {
		folder.Links = []Link{}
		if !claimed[folder.ID] {
			claimed[folder.ID] = true
			folder.Links = append(folder.Links, byFolder[folder.ID]...)
		}
		joined[i] = folder
	}
	return joined
}
