package x86_64

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keurnel/assembler/internal/codepage"
	"github.com/keurnel/assembler/internal/debugcontext"
	"github.com/keurnel/assembler/internal/frontend"
	"github.com/keurnel/assembler/internal/lineMap"
	"github.com/spf13/cobra"
)

var outputPath string
var bits32 bool
var dumpListing bool

var AssembleFileCmd = &cobra.Command{
	Use:     "assemble-file <assembly-file>",
	GroupID: "file-operations",
	Short:   "Assemble an x86_64 Intel-syntax source file into raw machine code.",
	Long: `Assemble an x86_64 Intel-syntax source file into raw machine code.

Runs the full pipeline: textual front-end -> instruction encoder -> two-pass
label resolution, and writes the resulting bytes to --output (default:
<input>.bin). With --dump, prints a hex-plus-mnemonic listing of the
compiled program to stdout instead of writing the binary.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAssembleFile(cmd, args)
	},
}

func init() {
	AssembleFileCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file for the assembled machine code (default <input>.bin)")
	AssembleFileCmd.Flags().BoolVar(&bits32, "32", false, "assemble for the 32-bit signature set instead of 64-bit")
	AssembleFileCmd.Flags().BoolVar(&dumpListing, "dump", false, "print a hex-plus-mnemonic listing instead of writing the binary")
}

// runAssembleFile resolves the input file, runs it through the textual
// front-end and the code page compiler, and writes the resulting bytes.
func runAssembleFile(cmd *cobra.Command, args []string) error {
	fullPath, err := resolveFilePath(args)
	if err != nil {
		return err
	}

	tracker, err := lineMap.Track(fullPath)
	if err != nil {
		return fmt.Errorf("failed to load source file: %w", err)
	}

	dbg := debugcontext.NewDebugContext(fullPath)
	nativeBits := 64
	if bits32 {
		nativeBits = 32
	}

	extra := frontend.CallingConventionSymbols()
	program, err := frontend.Assemble(tracker.Source(), nativeBits, extra, dbg)
	if err != nil {
		return fmt.Errorf("assembly failed: %w", err)
	}

	page, err := codepage.Compile(program)
	if err != nil {
		return fmt.Errorf("failed to compile program into executable memory: %w", err)
	}

	if dumpListing {
		cmd.Print(page.Dump())
		for _, w := range dbg.Warnings() {
			cmd.PrintErrln(w.String())
		}
		return nil
	}

	out := outputPath
	if out == "" {
		out = fullPath + ".bin"
	}
	if err := os.WriteFile(out, page.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	cmd.Printf("assembled %d bytes -> %s\n", page.Len(), out)
	for _, w := range dbg.Warnings() {
		cmd.PrintErrln(w.String())
	}
	return nil
}

// resolveFilePath validates the CLI arguments and returns the absolute path
// to the assembly file.
func resolveFilePath(args []string) (string, error) {
	if args[0] == "" {
		return "", fmt.Errorf("assembly file path is empty")
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("unable to get current working directory: %w", err)
	}

	fullPath := args[0]
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(cwd, fullPath)
	}
	if _, err := os.Stat(fullPath); os.IsNotExist(err) {
		return "", fmt.Errorf("assembly file does not exist at path: %s", fullPath)
	}

	return fullPath, nil
}
