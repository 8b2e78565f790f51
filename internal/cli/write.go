package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"lindle/internal/lindle"
)

func newLinkCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Create, update or delete a link",
	}
	cmd.AddCommand(newLinkCreateCmd(s), newLinkUpdateCmd(s), newLinkDeleteCmd(s))
	return cmd
}

func bindLinkFlags(cmd *cobra.Command, input *lindle.LinkInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "link name")
	cmd.Flags().StringVar(&input.URL, "url", "", "link URL")
	cmd.Flags().StringVar(&input.Folder, "folder", "", "ID of the folder holding the link")
	cmd.Flags().BoolVar(&input.Favourite, "favourite", false, "mark the link as favourite")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("folder")
}

func newLinkCreateCmd(s *state) *cobra.Command {
	var input lindle.LinkInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := s.client.CreateLink(cmd.Context(), input)
			if err != nil {
				return err
			}
			return s.printResult(cmd, result)
		},
	}
	bindLinkFlags(cmd, &input)
	return cmd
}

func newLinkUpdateCmd(s *state) *cobra.Command {
	var input lindle.LinkInput

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Replace every field of a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := s.client.UpdateLink(cmd.Context(), args[0], input)
			if err != nil {
				return err
			}
			return s.printResult(cmd, result)
		},
	}
	bindLinkFlags(cmd, &input)
	return cmd
}

func newLinkDeleteCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a link",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := s.client.DeleteLink(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.printResult(cmd, result)
		},
	}
}

func newFolderCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Create, update or delete a folder",
	}
	cmd.AddCommand(newFolderCreateCmd(s), newFolderUpdateCmd(s), newFolderDeleteCmd(s))
	return cmd
}

func bindFolderFlags(cmd *cobra.Command, input *lindle.FolderInput) {
	cmd.Flags().StringVar(&input.Name, "name", "", "folder name")
	cmd.Flags().BoolVar(&input.Public, "public", false, "make the folder public")
	cmd.Flags().StringSliceVar(&input.SharedEmails, "share", nil, "email to share the folder with (repeatable)")
}

func newFolderCreateCmd(s *state) *cobra.Command {
	var input lindle.FolderInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := s.client.CreateFolder(cmd.Context(), input)
			if err != nil {
				return err
			}
			return s.printResult(cmd, result)
		},
	}
	bindFolderFlags(cmd, &input)
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newFolderUpdateCmd(s *state) *cobra.Command {
	var input lindle.FolderInput

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a folder",
		Long: `Update a folder. Only the fields given on the command line are sent;
the others keep their current value. --share "" clears the share list.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			update, err := folderUpdate(cmd, input)
			if err != nil {
				return err
			}
			result, err := s.client.UpdateFolder(cmd.Context(), args[0], update)
			if err != nil {
				return err
			}
			return s.printResult(cmd, result)
		},
	}
	bindFolderFlags(cmd, &input)
	return cmd
}

// folderUpdate keeps the fields whose flags were set.
func folderUpdate(cmd *cobra.Command, input lindle.FolderInput) (lindle.FolderUpdate, error) {
	var update lindle.FolderUpdate
	flags := cmd.Flags()
	if flags.Changed("name") {
		update.Name = &input.Name
	}
	if flags.Changed("public") {
		update.Public = &input.Public
	}
	if flags.Changed("share") {
		emails := input.SharedEmails
		if emails == nil {
			emails = []string{}
		}
		update.SharedEmails = &emails
	}
	if update == (lindle.FolderUpdate{}) {
		return update, errors.New("nothing to update: set --name, --public or --share")
	}
	return update, nil
}

func newFolderDeleteCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := s.client.DeleteFolder(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return s.printResult(cmd, result)
		},
	}
}
