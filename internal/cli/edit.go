package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cedartree/cedar/internal/logging"
	"github.com/cedartree/cedar/internal/ui/pretty"
	"github.com/cedartree/cedar/pkg/document"
	"github.com/cedartree/cedar/pkg/edit"
	"github.com/cedartree/cedar/pkg/fsutil"
)

type editFlags struct {
	language  string
	write     bool
	noBackups bool
	showDiff  bool
}

func newEditCommand() *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit <file> <start> <removed> [replacement]",
		Short: "Apply one edit and re-parse incrementally",
		Long: `Apply a single text edit — remove <removed> bytes at byte offset
<start>, insert [replacement] — then re-parse the document incrementally
and print the resulting tree. The byte ranges the parser actually re-read
are reported; everything else was reused from the previous tree.

Examples:
  cedar edit data.json 5 0 '42, '        # insert at offset 5
  cedar edit formula.calc 14 0 ' * 5'    # insert before offset 14
  cedar edit data.json 4 2               # delete two bytes
  cedar edit --write --diff data.json 4 2`,
		Args: cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.language, "language", "", "language table to use (default: detect from file)")
	cmd.Flags().BoolVar(&flags.write, "write", false, "write the edited content back to the file")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&flags.showDiff, "diff", false, "print a unified diff of the edit")

	return cmd
}

// recordingInput serves a swappable buffer and records the byte offset of
// every read that returned data, so the CLI can show which regions an
// incremental re-parse actually touched.
type recordingInput struct {
	content   []byte
	recording bool
	offsets   []int
}

func (r *recordingInput) read(byteOffset int) ([]byte, bool) {
	if byteOffset >= len(r.content) {
		return nil, false
	}
	if r.recording {
		r.offsets = append(r.offsets, byteOffset)
	}
	return r.content[byteOffset:], true
}

func runEdit(cmd *cobra.Command, args []string, flags *editFlags) error {
	logger := logging.Default()
	path := args[0]

	start, err := strconv.Atoi(args[1])
	if err != nil || start < 0 {
		return fmt.Errorf("invalid start offset %q", args[1])
	}
	removed, err := strconv.Atoi(args[2])
	if err != nil || removed < 0 {
		return fmt.Errorf("invalid removed count %q", args[2])
	}
	replacement := ""
	if len(args) == 4 {
		replacement = args[3]
	}

	oldContent, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	textEdit := edit.TextEdit{StartOffset: start, EndOffset: start + removed, NewText: replacement}
	if err := edit.ValidateEdits([]edit.TextEdit{textEdit}, len(oldContent)); err != nil {
		return err
	}
	newContent := edit.ApplyEdits(oldContent, []edit.TextEdit{textEdit})

	table, err := resolveTable(path, oldContent, flags.language)
	if err != nil {
		return err
	}

	// Parse the original content, swap the buffer, then apply the edit
	// descriptor incrementally while recording which regions get re-read.
	input := &recordingInput{content: oldContent}
	doc := document.New(document.WithLogger(logger))
	defer doc.Close()
	if err := doc.SetLanguage(table); err != nil {
		return err
	}
	if err := doc.SetInput(document.Input{Read: input.read}); err != nil {
		return err
	}

	input.content = newContent
	input.recording = true
	if err := doc.Edit(textEdit.Descriptor()); err != nil {
		return err
	}

	root := doc.RootNode()
	defer root.Close()

	out := cmd.OutOrStdout()
	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, out))

	fmt.Fprintln(out, styles.ColorizeSExpr(root.String()))
	fmt.Fprintln(out, styles.Dim.Render(describeReads(input.offsets, len(newContent))))

	if flags.showDiff {
		if d := edit.GenerateDiff(path, oldContent, newContent); d.HasChanges() {
			fmt.Fprint(out, d.String())
		}
	}

	if flags.write {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := writeEdited(ctx, path, newContent, flags.noBackups); err != nil {
			return err
		}
		fmt.Fprintln(out, styles.Success.Render("wrote "+path))
	}

	return nil
}

// describeReads renders the recorded read offsets as human-readable byte
// ranges. Each read serves from its offset to end of content, so the
// touched region is [min(offsets), end) — or nothing at all when the whole
// tree was reused.
func describeReads(offsets []int, contentLen int) string {
	if len(offsets) == 0 {
		return "re-read: nothing (entire tree reused)"
	}
	sorted := append([]int(nil), offsets...)
	sort.Ints(sorted)
	var b strings.Builder
	fmt.Fprintf(&b, "re-read: bytes %d..%d", sorted[0], contentLen)
	return b.String()
}

// writeEdited writes content back to path atomically, with an optional
// sidecar backup of the original.
func writeEdited(ctx context.Context, path string, content []byte, noBackups bool) error {
	if !noBackups {
		cfg := fsutil.DefaultBackupConfig()
		if _, err := fsutil.CreateBackup(ctx, path, cfg); err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
	}
	if err := fsutil.WriteAtomic(ctx, path, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
