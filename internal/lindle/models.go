package lindle

// User is the account that owns the API key.
type User struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Email     string `json:"email" yaml:"email"`
	Image     string `json:"image" yaml:"image"`
	LinkLimit int    `json:"linkLimit" yaml:"linkLimit"`
}

// Link is a single saved URL. Folder holds the owning folder's ID.
type Link struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	URL    string `json:"url" yaml:"url"`
	Folder string `json:"folder" yaml:"folder"`
}

// Folder is a named container of links. Links is empty unless the folders
// were fetched with links.
type Folder struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	PublicFolder bool     `json:"publicFolder" yaml:"publicFolder"`
	JourneyLink  string   `json:"journeyLink" yaml:"journeyLink"`
	SharedEmails []string `json:"sharedEmails" yaml:"sharedEmails"`
	Links        []Link   `json:"links" yaml:"links"`
}

// Bookmark is a link as reported by the browser bookmark sync feed.
type Bookmark struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Folder string `json:"folder" yaml:"folder"`
	Date   string `json:"date" yaml:"date"`
	URL    string `json:"url" yaml:"url"`
}

// BookmarkFolder is a folder as reported by the browser bookmark sync feed.
type BookmarkFolder struct {
	ID     string `json:"id" yaml:"id"`
	Name   string `json:"name" yaml:"name"`
	Folder string `json:"folder" yaml:"folder"`
	Date   string `json:"date" yaml:"date"`
}

// SyncedBookmarks is the sync feed payload. The two lists are returned as
// the server sent them and are not cross-referenced.
type SyncedBookmarks struct {
	Folders []BookmarkFolder `json:"folders" yaml:"folders"`
	Links   []Bookmark       `json:"links" yaml:"links"`
}

// APIResult is the envelope every mutating endpoint answers with.
// Result is false when the server rejected the operation for a business
// reason; Message carries its explanation.
type APIResult struct {
	Result  bool   `json:"result" yaml:"result"`
	Message string `json:"message" yaml:"message"`
}

// LinkInput is the request body for creating or replacing a link.
type LinkInput struct {
	Name      string `json:"name"`
	URL       string `json:"url"`
	Folder    string `json:"folder"`
	Favourite bool   `json:"favourite"`
}

// FolderInput is the request body for creating a folder.
type FolderInput struct {
	Name         string   `json:"name"`
	Public       bool     `json:"public"`
	SharedEmails []string `json:"sharedEmails"`
}

// FolderUpdate is a partial folder update. Nil fields are left out of the
// request and keep their current value on the server. A non-nil
// SharedEmails pointing at an empty slice clears the share list.
type FolderUpdate struct {
	Name         *string   `json:"name,omitempty"`
	Public       *bool     `json:"public,omitempty"`
	SharedEmails *[]string `json:"sharedEmails,omitempty"`
}

// Wire shapes as served by the API. They are validated before being mapped
// to the public types above.

type userWire struct {
	ID    string `json:"_id" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
	Count *int   `json:"count" validate:"required"`
}

type linkWire struct {
	ID     string `json:"_id" validate:"required"`
	Name   string `json:"name"`
	URL    string `json:"url" validate:"required"`
	Folder string `json:"folder"`
}

type folderWire struct {
	ID           string   `json:"_id" validate:"required"`
	Name         string   `json:"name" validate:"required"`
	Public       *bool    `json:"public" validate:"required"`
	Codename     *string  `json:"codename"`
	SharedEmails []string `json:"sharedEmails"`
}

type bookmarkWire struct {
	ID     string `json:"_id" validate:"required"`
	Name   string `json:"name"`
	Folder string `json:"folder"`
	Date   string `json:"date"`
	URL    string `json:"url" validate:"required"`
}

type bookmarkFolderWire struct {
	ID     string `json:"_id" validate:"required"`
	Name   string `json:"name"`
	Folder string `json:"folder"`
	Date   string `json:"date"`
}

type syncWire struct {
	Folders []bookmarkFolderWire `json:"folders"`
	Links   []bookmarkWire       `json:"links"`
}

type resultWire struct {
	Result  *bool  `json:"result" validate:"required"`
	Message string `json:"message"`
}

func (w userWire) toUser() User {
	u := User{
		ID:    w.ID,
		Name:  w.Name,
		Email: w.Email,
		Image: w.Image,
	}
	if w.Count != nil {
		u.LinkLimit = *w.Count
	}
	return u
}

func (w linkWire) toLink() Link {
	return Link{
		ID:     w.ID,
		Name:   w.Name,
		URL:    w.URL,
		Folder: w.Folder,
	}
}

func (w folderWire) toFolder(journeyBase string) Folder {
	f := Folder{
		ID:           w.ID,
		Name:         w.Name,
		JourneyLink:  journeyBase,
		SharedEmails: w.SharedEmails,
		Links:        []Link{},
	}
	if w.Public != nil {
		f.PublicFolder = *w.Public
	}
	if w.Codename != nil {
		f.JourneyLink = journeyBase + *w.Codename
	}
	if f.SharedEmails == nil {
		f.SharedEmails = []string{}
	}
	return f
}

func (w bookmarkWire) toBookmark() Bookmark {
	return Bookmark{
		ID:     w.ID,
		Name:   w.Name,
		Folder: w.Folder,
		Date:   w.Date,
		URL:    w.URL,
	}
}

func (w bookmarkFolderWire) toBookmarkFolder() BookmarkFolder {
	return BookmarkFolder{
		ID:     w.ID,
		Name:   w.Name,
		Folder: w.Folder,
		Date:   w.Date,
	}
}

func (w resultWire) toResult() APIResult {
	r := APIResult{Message: w.Message}
	if w.Result != nil {
		r.Result = *w.Result
	}
	return r
}
