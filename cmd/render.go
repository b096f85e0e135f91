package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"doccloud/cloud"
	"doccloud/file"
	"doccloud/pipeline"

	"github.com/spf13/cobra"
)

var (
	renderOut string
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render the word cloud of one PDF or DOCX file to a PNG",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "cloud.png", "Output PNG path")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	return renderFile(a.pipeline, args[0], renderOut, cmd.ErrOrStderr())
}

var errRenderFailed = errors.New("word cloud was not rendered")

// renderFile runs path through p and writes the PNG to out. Warnings are printed
// and leave no output file; errors are printed and returned.
func renderFile(p *pipeline.Pipeline, path, out string, stderr io.Writer) error {
	name := filepath.Base(path)
	if !file.AcceptedName(name) {
		return fmt.Errorf("%s: only .pdf and .docx files are accepted", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	sink := &cliSink{out: out, stderr: stderr}
	outcome := p.Process(file.Document{
		Name:         name,
		DeclaredType: file.MimeTypeForName(name),
		Data:         data,
	}, sink)

	if sink.err != nil {
		return sink.err
	}
	if outcome.Status == pipeline.StatusError {
		return errRenderFailed
	}
	return nil
}

// cliSink reports to the terminal and writes the image to a file.
type cliSink struct {
	out    string
	stderr io.Writer
	err    error
}

func (s *cliSink) ReportError(msg string) {
	fmt.Fprintf(s.stderr, "error: %s\n", msg)
}

func (s *cliSink) ReportWarning(msg string) {
	fmt.Fprintf(s.stderr, "warning: %s\n", msg)
}

func (s *cliSink) ShowImage(img *cloud.Image) {
	f, err := os.Create(s.out)
	if err != nil {
		s.err = fmt.Errorf("failed to create %s: %w", s.out, err)
		return
	}
	if err := cloud.EncodePNG(f, img.Image); err != nil {
		_ = f.Close()
		s.err = err
		return
	}
	if err := f.Close(); err != nil {
		s.err = fmt.Errorf("failed to write %s: %w", s.out, err)
		return
	}
	fmt.Fprintf(s.stderr, "wrote %s (%d words)\n", s.out, len(img.Words))
}

func (s *cliSink) WrapBusy(label string, fn func()) {
	fmt.Fprintln(s.stderr, label)
	fn()
}
