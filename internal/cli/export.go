package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"lindle/internal/export"
	"lindle/internal/lindle"
)

func newExportCmd(s *state) *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export folders and links as a browser bookmark file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folders, err := s.client.GetFolders(cmd.Context(), true)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("cannot create file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			if err := export.WriteNetscape(w, folders); err != nil {
				return err
			}
			if outFile != "" {
				s.log.Infof("Exported %d folders to %s", len(folders), outFile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outFile, "out", "", "write to this file instead of stdout")
	return cmd
}

// ImportReport summarizes an import run.
type ImportReport struct {
	Created  int              `json:"created" yaml:"created"`
	Rejected []RejectedImport `json:"rejected" yaml:"rejected"`
	Skipped  []RejectedImport `json:"skipped" yaml:"skipped"`
}

// RejectedImport is a link that was not created. Folder is the folder
// name it had in the bookmark file.
type RejectedImport struct {
	URL     string `json:"url" yaml:"url"`
	Folder  string `json:"folder" yaml:"folder"`
	Message string `json:"message" yaml:"message"`
}

// ErrUnmatchedFolder is returned when links were skipped because their
// bookmark folder has no Lindle folder of the same name.
var ErrUnmatchedFolder = errors.New("no matching Lindle folder")

func newImportCmd(s *state) *cobra.Command {
	var folderID string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create links from a browser bookmark file",
		Long: `Create one Lindle link per bookmark in FILE.

With --folder every link goes to that folder. Without it each bookmark goes
to the Lindle folder named like its bookmark folder; bookmarks without a
match are skipped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("cannot open file: %w", err)
			}
			defer func() { _ = f.Close() }()

			imported, err := export.ParseNetscape(f)
			if err != nil {
				return err
			}

			target := func(export.ImportedLink) (string, bool) { return folderID, true }
			if folderID == "" {
				folders, err := s.client.GetFolders(cmd.Context(), false)
				if err != nil {
					return err
				}
				target = folderByName(folders)
			}

			report := ImportReport{Rejected: []RejectedImport{}, Skipped: []RejectedImport{}}
			for _, link := range imported {
				id, ok := target(link)
				if !ok {
					s.log.Warnf("Skipping %s: no Lindle folder named %q", link.URL, link.Folder)
					report.Skipped = append(report.Skipped, RejectedImport{
						URL:     link.URL,
						Folder:  link.Folder,
						Message: fmt.Sprintf("no Lindle folder named %q", link.Folder),
					})
					continue
				}

				name := link.Name
				if name == "" {
					name = link.URL
				}
				result, err := s.client.CreateLink(cmd.Context(), lindle.LinkInput{
					Name:   name,
					URL:    link.URL,
					Folder: id,
				})
				if err != nil {
					return err
				}
				if !result.Result {
					s.log.Warnf("Lindle rejected %s: %s", link.URL, result.Message)
					report.Rejected = append(report.Rejected, RejectedImport{
						URL:     link.URL,
						Folder:  link.Folder,
						Message: result.Message,
					})
					continue
				}
				report.Created++
			}

			if err := s.print(cmd, report); err != nil {
				return err
			}
			if len(report.Rejected) > 0 {
				return fmt.Errorf("%w: %d of %d links", ErrRejected, len(report.Rejected), len(imported))
			}
			if len(report.Skipped) > 0 {
				return fmt.Errorf("%w: %d of %d links skipped", ErrUnmatchedFolder, len(report.Skipped), len(imported))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&folderID, "folder", "", "ID of the folder receiving every link (default: match folders by name)")
	return cmd
}

// folderByName resolves a bookmark's folder name to the first Lindle folder
// with that name.
func folderByName(folders []lindle.Folder) func(export.ImportedLink) (string, bool) {
	ids := make(map[string]string, len(folders))
	for _, f := range folders {
		if _, seen := ids[f.Name]; !seen {
			ids[f.Name] = f.ID
		}
	}
	return func(link export.ImportedLink) (string, bool) {
		if link.Folder == "" {
			return "", false
		}
		id, ok := ids[link.Folder]
		return id, ok
	}
}
