package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"resume-ats/internal/extract"
	"resume-ats/resume/service"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Parse, score and optimize resumes from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	engine := service.New()
	root.AddCommand(
		newParseCmd(engine),
		newScoreCmd(engine),
		newKeywordsCmd(engine),
		newOptimizeCmd(engine),
	)
	return root
}

func newParseCmd(engine service.Engine) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Extract a structured document from a resume file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readResume(cmd.Context(), file)
			if err != nil {
				return err
			}
			doc, err := engine.ParseDocument(text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), doc)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a PDF, DOCX or text resume")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newScoreCmd(engine service.Engine) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rate a resume for ATS compatibility",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readResume(cmd.Context(), file)
			if err != nil {
				return err
			}
			doc, err := engine.ParseDocument(text)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), engine.ScoreDocument(text, doc))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a PDF, DOCX or text resume")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newKeywordsCmd(engine service.Engine) *cobra.Command {
	var jobFile string
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Classify the skills a job posting asks for",
		RunE: func(cmd *cobra.Command, _ []string) error {
			job, err := readJob(cmd.InOrStdin(), jobFile)
			if err != nil {
				return err
			}
			analysis, err := engine.ClassifyJobText(job)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), analysis)
		},
	}
	cmd.Flags().StringVarP(&jobFile, "job", "j", "-", "Path to the job description, or - for stdin")
	return cmd
}

func newOptimizeCmd(engine service.Engine) *cobra.Command {
	var file, jobFile string
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Report how well a resume fits a job description",
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readResume(cmd.Context(), file)
			if err != nil {
				return err
			}
			job, err := readJob(cmd.InOrStdin(), jobFile)
			if err != nil {
				return err
			}
			doc, err := engine.ParseDocument(text)
			if err != nil {
				return err
			}
			report, err := engine.OptimizeForJob(doc, job)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to a PDF, DOCX or text resume")
	cmd.Flags().StringVarP(&jobFile, "job", "j", "", "Path to the job description, or - for stdin")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("job")
	return cmd
}

func readResume(ctx context.Context, path string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	return extract.Text(ctx, raw, http.DetectContentType(raw), path)
}

func readJob(stdin io.Reader, path string) (string, error) {
	var (
		raw []byte
		err error
	)
	if strings.TrimSpace(path) == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read job description: %w", err)
	}
	return string(raw), nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
