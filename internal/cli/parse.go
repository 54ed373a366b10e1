package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cedartree/cedar/internal/logging"
	"github.com/cedartree/cedar/internal/ui/pretty"
	"github.com/cedartree/cedar/pkg/document"
	"github.com/cedartree/cedar/pkg/langdetect"
	"github.com/cedartree/cedar/pkg/langtable"
)

type parseFlags struct {
	language string
	showSize bool
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its syntax tree",
		Long: `Parse a single file and print its concrete syntax tree as an
S-expression. Syntax errors appear as (ERROR '<c>') nodes; the exit code
reflects whether any were found.

Examples:
  cedar parse data.json
  cedar parse --language arithmetic formula.txt
  cedar parse --size data.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.language, "language", "", "language table to use (default: detect from file)")
	cmd.Flags().BoolVar(&flags.showSize, "size", false, "print the document's byte and character counts")

	return cmd
}

func runParse(cmd *cobra.Command, path string, flags *parseFlags) error {
	logger := logging.Default()

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	table, err := resolveTable(path, content, flags.language)
	if err != nil {
		return err
	}

	doc := document.New(document.WithLogger(logger))
	defer doc.Close()
	if err := doc.SetLanguage(table); err != nil {
		return err
	}
	if err := doc.SetInput(document.BytesInput(content)); err != nil {
		return err
	}

	root := doc.RootNode()
	defer root.Close()

	colorMode, _ := cmd.Flags().GetString("color")
	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
	fmt.Fprintln(cmd.OutOrStdout(), styles.ColorizeSExpr(root.String()))

	if flags.showSize {
		fmt.Fprintf(cmd.OutOrStdout(), "%d bytes, %d chars\n", root.Size().Bytes, root.Size().Chars)
	}

	if treeHasErrors(root) {
		return ErrSyntaxErrorsFound
	}
	return nil
}

// resolveTable picks the language table for a file: explicit name first,
// then detection, with json as the final fallback.
func resolveTable(path string, content []byte, explicit string) (langtable.Table, error) {
	name := explicit
	if name == "" {
		name = langdetect.DetectFile(path, content)
	}
	if name == "" {
		name = "json"
	}
	table, ok := langtable.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown language %q (known: %v)", name, langtable.Names())
	}
	return table, nil
}

// treeHasErrors reports whether any ERROR node exists under root.
func treeHasErrors(n *document.Node) bool {
	if n.IsError() {
		return true
	}
	for i := 0; i < n.ChildCount(); i++ {
		if treeHasErrors(n.Child(i)) {
			return true
		}
	}
	return false
}
