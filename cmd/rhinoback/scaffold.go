package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rhinoback/rhinoback/config"
	"github.com/rhinoback/rhinoback/internal/advisor"
	"github.com/rhinoback/rhinoback/internal/codegen"
	"github.com/rhinoback/rhinoback/internal/llm"
	"github.com/rhinoback/rhinoback/internal/mcptools"
)

var (
	scaffoldIn    mcptools.GenerateCodeInput
	scaffoldOut   string
	scaffoldForce bool
	scaffoldAI    bool
)

var errUnsafePath = errors.New("file path escapes the output directory")

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold",
	Short: "Write a starter backend for a description to disk",
	Example: `  rhinoback scaffold --input "a blog with comments" --out ./blog-api
  rhinoback scaffold -i "an online shop" --framework express --language javascript --migrations`,
	RunE: runScaffold,
}

func init() {
	f := scaffoldCmd.Flags()
	f.StringVarP(&scaffoldIn.Input, "input", "i", "", "plain-language description of the application")
	f.StringVarP(&scaffoldIn.Name, "name", "n", "", "project name (defaults to the description)")
	f.StringVar(&scaffoldIn.Framework, "framework", string(codegen.Express), "express, fastapi, django or spring-boot")
	f.StringVar(&scaffoldIn.Language, "language", string(codegen.TypeScript), "typescript, javascript, python or java")
	f.BoolVar(&scaffoldIn.IncludeAuth, "auth", false, "add JWT dependencies")
	f.BoolVar(&scaffoldIn.IncludeTests, "tests", false, "add test dependencies")
	f.BoolVar(&scaffoldIn.IncludeMigrations, "migrations", false, "add an initial SQL migration")
	f.StringVarP(&scaffoldOut, "out", "o", ".", "output directory")
	f.BoolVar(&scaffoldForce, "force", false, "overwrite existing files")
	f.BoolVar(&scaffoldAI, "ai", false, "ask the model for the code first (needs GROQ_API_KEY)")
	_ = scaffoldCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(scaffoldCmd)
}

func runScaffold(cmd *cobra.Command, args []string) error {
	req := mcptools.ScaffoldRequest(scaffoldIn)

	var code *codegen.GeneratedCode
	if scaffoldAI {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		out, err := advisor.New(llm.NewGroqClient(cfg)).GenerateCode(cmd.Context(), req, llm.Options{})
		if err != nil {
			return err
		}
		if out.Invalid() {
			return out.Err
		}
		if out.Fallback() {
			color.Yellow("⚠️  AI generation failed, using the scaffold: %s", out.ErrorMessage())
		}
		code = out.Payload
	} else {
		var err error
		if code, err = codegen.Generate(req); err != nil {
			return err
		}
	}

	color.Cyan("🔨 Writing %d file(s) to %s...", len(code.Files), scaffoldOut)
	if err := writeFiles(scaffoldOut, code.Files, scaffoldForce); err != nil {
		return err
	}

	color.Green("✅ Scaffold ready")
	if code.Instructions != "" {
		fmt.Fprintln(cmd.OutOrStdout(), code.Instructions)
	}
	return nil
}

// writeFiles writes files under dir. Every path must stay inside dir and existing files are kept
// unless force is set. Nothing is written when any file fails those checks.
func writeFiles(dir string, files []codegen.File, force bool) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}

	targets := make([]string, len(files))
	seen := make(map[string]bool, len(files))
	for i, f := range files {
		target, err := safeJoin(root, f.Path)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Path, err)
		}
		if seen[target] {
			return fmt.Errorf("%s: listed more than once", f.Path)
		}
		seen[target] = true
		if !force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", target)
			} else if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
		targets[i] = target
	}

	for i, f := range files {
		if err := os.MkdirAll(filepath.Dir(targets[i]), 0755); err != nil {
			return fmt.Errorf("create directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(targets[i], []byte(f.Content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", f.Path, err)
		}
	}
	return nil
}

func safeJoin(root, path string) (string, error) {
	if path == "" || filepath.IsAbs(path) {
		return "", errUnsafePath
	}
	target := filepath.Join(root, filepath.FromSlash(path))
	rel, err := filepath.Rel(root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errUnsafePath
	}
	return target, nil
}
