package cli

import (
	"github.com/spf13/cobra"
)

func newUserCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "user",
		Short: "Show the account that owns the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := s.client.GetUser(cmd.Context())
			if err != nil {
				return err
			}
			return s.print(cmd, user)
		},
	}
}

func newLinksCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "links",
		Short: "List all links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			links, err := s.client.GetLinks(cmd.Context())
			if err != nil {
				return err
			}
			return s.print(cmd, links)
		},
	}
}

func newFoldersCmd(s *state) *cobra.Command {
	var withLinks bool

	cmd := &cobra.Command{
		Use:   "folders",
		Short: "List all folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders, err := s.client.GetFolders(cmd.Context(), withLinks)
			if err != nil {
				return err
			}
			return s.print(cmd, folders)
		},
	}
	cmd.Flags().BoolVarP(&withLinks, "links", "l", false, "include each folder's links")
	return cmd
}

func newSyncCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Show the browser bookmark sync feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			synced, err := s.client.GetSyncedBookmarks(cmd.Context())
			if err != nil {
				return err
			}
			return s.print(cmd, synced)
		},
	}
}
