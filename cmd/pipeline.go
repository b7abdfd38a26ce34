package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quizmd/quizmd/internal/store"
	"github.com/quizmd/quizmd/markdown"
	"github.com/quizmd/quizmd/quiz"
)

// pipelineResult unifies the Markdown and JSON ingest pipelines for the
// file commands. Module is nil only on document-level failure.
type pipelineResult struct {
	Module     *quiz.QuizModule
	Issues     []quiz.Issue
	Duplicates []string
}

// runPipeline reads the file and runs the matching ingest pipeline by
// extension: the Markdown dialect for .md, the JSON codec for .json.
func runPipeline(path string, now time.Time) (*pipelineResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		res := markdown.ParseModule(string(data))
		return &pipelineResult{Module: res.Module, Issues: res.Issues, Duplicates: res.Duplicates}, nil
	case ".json":
		res := quiz.ValidateAndNormalize(data, now)
		return &pipelineResult{Module: res.Module, Issues: res.Issues, Duplicates: res.Duplicates}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q (want .md or .json)", filepath.Ext(path))
	}
}

// printIssues writes the issue list to stdout and returns the counts.
func printIssues(issues []quiz.Issue) (errCount, warnCount int) {
	for _, issue := range issues {
		fmt.Println(issue.String())
	}
	return len(quiz.Errors(issues)), len(quiz.Warnings(issues))
}

// resolveModuleName picks the module to operate on: the positional
// argument when given, otherwise the single stored module.
func resolveModuleName(ctx context.Context, repo store.ModuleRepo, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	infos, err := repo.List(ctx)
	if err != nil {
		return "", err
	}
	switch len(infos) {
	case 0:
		return "", fmt.Errorf("no modules imported yet; run \"quizmd import\" first")
	case 1:
		return infos[0].Name, nil
	default:
		names := make([]string, len(infos))
		for i, info := range infos {
			names[i] = info.Name
		}
		return "", fmt.Errorf("multiple modules stored, pick one: %s", strings.Join(names, ", "))
	}
}
