package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pet-health-assessment/internal/domain/assessment"
	"pet-health-assessment/internal/platform/httpclient"
	"pet-health-assessment/internal/platform/logger"

	"github.com/spf13/cobra"
)

type assessFlags struct {
	server       string
	image        string
	energy       int
	appetite     int
	mood         int
	observations []string
	poll         time.Duration
	timeout      time.Duration
}

type sessionView struct {
	ID       string `json:"id"`
	Step     int    `json:"step"`
	Progress int    `json:"progress"`
	Status   string `json:"status"`
}

func newAssessCmd() *cobra.Command {
	def := assessment.DefaultMetrics()
	f := assessFlags{}

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run a health assessment against the API",
		Long: `Drive a wizard session end to end:

  1. upload the photo
  2. set behavior metrics and observations
  3. wait for processing
  4. print the result`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), f.timeout)
			defer cancel()
			return runAssess(ctx, cmd.OutOrStdout(), f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.server, "server", "http://localhost:8080", "API base URL")
	fl.StringVar(&f.image, "image", "", "path to the pet photo (required)")
	fl.IntVar(&f.energy, "energy", def.Energy, "energy level [1,10]")
	fl.IntVar(&f.appetite, "appetite", def.Appetite, "appetite level [1,10]")
	fl.IntVar(&f.mood, "mood", def.Mood, "mood level [1,10]")
	fl.StringArrayVar(&f.observations, "observation", nil, "symptom observation (repeatable)")
	fl.DurationVar(&f.poll, "poll", 250*time.Millisecond, "processing poll interval")
	fl.DurationVar(&f.timeout, "timeout", 30*time.Second, "overall timeout")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func runAssess(ctx context.Context, out io.Writer, f assessFlags) error {
	log := logger.NewFromEnv().With(map[string]any{"cmd": "assess"})

	c, err := httpclient.New(f.server, 0)
	if err != nil {
		return err
	}

	img, err := os.Open(f.image)
	if err != nil {
		return fmt.Errorf("open image: %w", err)
	}
	defer img.Close()

	var sess sessionView
	if err := c.DoJSON(ctx, http.MethodPost, "/sessions", nil, &sess); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	base := "/sessions/" + sess.ID
	log.Debug("session created", map[string]any{"session_id": sess.ID})

	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(f.image)))
	if err := c.UploadFile(ctx, base+"/image", "image", filepath.Base(f.image), ct, img, nil); err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	if err := c.DoJSON(ctx, http.MethodPost, base+"/next", nil, nil); err != nil {
		return fmt.Errorf("advance to behavior step: %w", err)
	}

	m := assessment.Metrics{Energy: f.energy, Appetite: f.appetite, Mood: f.mood}
	if err := c.DoJSON(ctx, http.MethodPut, base+"/metrics", m, nil); err != nil {
		return fmt.Errorf("set metrics: %w", err)
	}
	for _, o := range f.observations {
		if err := c.DoJSON(ctx, http.MethodPost, base+"/observations/toggle", map[string]string{"label": o}, nil); err != nil {
			return fmt.Errorf("observation %q: %w", o, err)
		}
	}
	if err := c.DoJSON(ctx, http.MethodPost, base+"/next", nil, &sess); err != nil {
		return fmt.Errorf("start processing: %w", err)
	}

	if err := waitForResults(ctx, c, base, f.poll, &sess); err != nil {
		return err
	}

	var res assessment.Result
	if err := c.DoJSON(ctx, http.MethodGet, base+"/result", nil, &res); err != nil {
		return fmt.Errorf("fetch result: %w", err)
	}
	_ = c.DoJSON(ctx, http.MethodDelete, base, nil, nil)

	return writeResult(out, res)
}

// waitForResults hace polling de la sesión hasta el paso 4.
func waitForResults(ctx context.Context, c *httpclient.Client, base string, every time.Duration, sess *sessionView) error {
	t := time.NewTicker(every)
	defer t.Stop()

	for sess.Step != 4 {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for results (progress %d%%): %w", sess.Progress, ctx.Err())
		case <-t.C:
		}
		if err := c.DoJSON(ctx, http.MethodGet, base, nil, sess); err != nil {
			return fmt.Errorf("poll session: %w", err)
		}
	}
	return nil
}

func writeResult(w io.Writer, r assessment.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Risk score: %d (%s)\n", r.Score, r.Level)
	fmt.Fprintln(&b, r.Summary)
	fmt.Fprintln(&b, strings.Repeat("─", 40))
	fmt.Fprintln(&b, "Observations:")
	for _, o := range r.Observations {
		fmt.Fprintf(&b, "  - %s\n", o)
	}
	fmt.Fprintln(&b, "Recommended actions:")
	for _, a := range r.Actions {
		fmt.Fprintf(&b, "  - %s\n", a)
	}
	fmt.Fprintln(&b, "Nearby vets:")
	for _, v := range r.Vets {
		fmt.Fprintf(&b, "  - %-34s %-8s %s\n", v.Name, v.Distance, v.Availability)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
