package lindle

import (
	"context"
)

// ClientInterface defines the interface for the Lindle API client.
type ClientInterface interface {
	GetUser(ctx context.Context) (*User, error)
	GetLinks(ctx context.Context) ([]Link, error)
	GetFolders(ctx context.Context, withLinks bool) ([]Folder, error)
	GetSyncedBookmarks(ctx context.Context) (*SyncedBookmarks, error)
	CreateLink(ctx context.Context, input LinkInput) (*APIResult, error)
	UpdateLink(ctx context.Context, id string, input LinkInput) (*APIResult, error)
	DeleteLink(ctx context.Context, id string) (*APIResult, error)
	CreateFolder(ctx context.Context, input FolderInput) (*APIResult, error)
	UpdateFolder(ctx context.Context, id string, update FolderUpdate) (*APIResult, error)
	DeleteFolder(ctx context.Context, id string) (*APIResult, error)
}

var _ ClientInterface = (*Client)(nil)
