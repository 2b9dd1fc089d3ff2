package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/brogergvhs/mangatown/internal/chapters"
	"github.com/brogergvhs/mangatown/internal/config"
	"github.com/brogergvhs/mangatown/internal/providers"
	"github.com/brogergvhs/mangatown/internal/providers/mangatown"
	"github.com/brogergvhs/mangatown/internal/ui"
	"github.com/brogergvhs/mangatown/internal/util"

	"github.com/spf13/cobra"
)

var (
	// selection
	flagChapters string

	// runtime
	flagOutput         string
	flagPageWorkers    int
	flagChapterWorkers int
	flagRetries        int
	flagFilename       string
	flagCBZ            bool
	flagKeepFolders    bool
	flagDryRun         bool

	// headers/auth
	flagCookie     string
	flagCookieFile string
	flagUserAgent  string
	flagCloudflare bool
)

func init() {
	downloadCmd := &cobra.Command{
		Use:   "download [series name]",
		Short: "Download chapters of a series. Uses the defaults from the selected config, overwritten by CLI flags",
		Example: `  mangatown download "Wakusei No Samidare" --chapters 5
  mangatown download "One Piece" --chapters 1000- --output ~/manga --cbz`,
		RunE: runDownload,
	}

	// selection
	downloadCmd.Flags().StringVar(&flagChapters, "chapters", "", "chapter ranges, e.g. 1-10,12,20- (default: all)")

	// runtime
	downloadCmd.Flags().StringVar(&flagOutput, "output", "", "output folder")
	downloadCmd.Flags().IntVar(&flagPageWorkers, "page-workers", 0, "parallel page downloads per chapter (default 5)")
	downloadCmd.Flags().IntVar(&flagChapterWorkers, "chapter-workers", 0, "parallel chapter downloads (default 2)")
	downloadCmd.Flags().IntVar(&flagRetries, "retries", 0, "attempts per request (default 3)")
	downloadCmd.Flags().StringVar(&flagFilename, "filename", "", "page path template, placeholders {dest} {series} {chapter} {index} {page} {ext}")
	downloadCmd.Flags().BoolVar(&flagCBZ, "cbz", false, "pack every chapter into a CBZ archive")
	downloadCmd.Flags().BoolVar(&flagKeepFolders, "keep-folders", false, "keep page folders after packing a CBZ")
	downloadCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "show what would be downloaded, don't download")

	// headers/auth
	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "cookie string, e.g. \"key=value; other=123\"")
	downloadCmd.Flags().StringVar(&flagCookieFile, "cookie-file", "", "path to a text file with cookies (one header line)")
	downloadCmd.Flags().StringVar(&flagUserAgent, "user-agent", "", "override User-Agent")
	downloadCmd.Flags().BoolVar(&flagCloudflare, "cloudflare", false, "send browser-like TLS and headers to get past Cloudflare")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	s, err := newSession(config.Options{
		Output:           flagOutput,
		PageWorkers:      flagPageWorkers,
		ChapterWorkers:   flagChapterWorkers,
		Retries:          flagRetries,
		CBZ:              flagCBZ,
		KeepFolders:      flagKeepFolders,
		FilenameTemplate: flagFilename,
		Cookie:           flagCookie,
		CookieFile:       flagCookieFile,
		UserAgent:        flagUserAgent,
		Cloudflare:       flagCloudflare,
	})
	if err != nil {
		return err
	}
	cfg := s.cfg

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n", s.used)
	cfg.Print(out)
	fmt.Fprintln(out)

	q, err := s.query(args, flagChapters)
	if err != nil {
		return err
	}

	ctx, cancel := util.WithInterrupt(context.Background())
	defer cancel()

	selected, err := s.client.ListChapters(ctx, q)
	if err != nil {
		return err
	}
	if len(selected) == 0 {
		return fmt.Errorf("no chapters of %s match %s", q.Series, rangesString(q))
	}

	if flagDryRun {
		fmt.Fprintf(out, "Dry-run: %d chapters selected.\n\n", len(selected))
		return renderTable(cmd, []string{"CHAPTER", "URL"}, chapterRows(selected))
	}

	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	naming := mangatown.TemplateNaming(cfg.FilenameTemplate)
	if cfg.CBZ && naming.IsCustom() {
		s.log.Warnf("--cbz is ignored with a custom filename template\n")
	}

	pm := ui.NewProgressManager(out)
	stats := &ui.Stats{}
	start := time.Now()

	sem := make(chan struct{}, cfg.ChapterWorkers)
	var wg sync.WaitGroup

	for _, ch := range selected {
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			downloadOne(ctx, s, ch, naming, pm, stats)
		}()
	}
	wg.Wait()
	pm.Wait()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Download Summary:")
	fmt.Fprintf(out, "Chapters:  %d\n", stats.TotalChapters.Load())
	fmt.Fprintf(out, "Pages:     %d\n", stats.TotalPages.Load())
	fmt.Fprintf(out, "Not found: %d\n", stats.NotFound.Load())
	fmt.Fprintf(out, "Failed:    %d\n", stats.Failed.Load())
	fmt.Fprintf(out, "Data:      %s\n", util.Human(stats.TotalBytes.Load()))
	fmt.Fprintf(out, "Time:      %s\n", time.Since(start).Round(time.Second))

	if err := ctx.Err(); err != nil {
		return err
	}
	if n := stats.Failed.Load(); n > 0 {
		return fmt.Errorf("%d chapters failed", n)
	}

	fmt.Fprintln(out, "\nAll done.")
	return nil
}

// pageCounter remembers the last progress of a chapter for the summary.
type pageCounter struct {
	*ui.ProgressHandle
	mu    sync.Mutex
	pages int
	bytes int64
}

func (p *pageCounter) Update(done, total int, bytes int64) {
	p.mu.Lock()
	p.pages, p.bytes = done, bytes
	p.mu.Unlock()

	p.ProgressHandle.Update(done, total, bytes)
}

func downloadOne(ctx context.Context, s *session, ch providers.Chapter, naming mangatown.NamingPolicy, pm *ui.ProgressManager, stats *ui.Stats) {
	cfg := s.cfg
	label := "Ch." + chapters.FormatNumber(ch.Number)
	job := providers.JobFor(ch, cfg.Output)

	handle := &pageCounter{ProgressHandle: pm.Register(label)}
	defer handle.MarkDone()

	res, err := s.client.DownloadChapter(ctx, job, mangatown.Config{
		PageConcurrency: cfg.PageWorkers,
		Naming:          naming,
		Progress:        handle,
	})
	if err != nil {
		handle.Abort()
		stats.Failed.Add(1)
		s.log.Errorf("Chapter %s failed: %v\n", chapters.FormatNumber(ch.Number), err)
		return
	}

	if res.Code == providers.ResultNotFound {
		handle.Drop()
		stats.NotFound.Add(1)
		s.log.Warnf("Chapter %s: %s\n", chapters.FormatNumber(ch.Number), res.Message)
		return
	}

	if cfg.CBZ && !naming.IsCustom() {
		if err := packChapter(job, cfg.Output, cfg.KeepFolders); err != nil {
			stats.Failed.Add(1)
			s.log.Errorf("CBZ for %s failed: %v\n", label, err)
			return
		}
	}

	stats.TotalChapters.Add(1)
	stats.TotalPages.Add(int64(handle.pages))
	stats.TotalBytes.Add(handle.bytes)
}

func packChapter(job providers.Job, output string, keep bool) error {
	files, err := util.ListFiles(job.Dest)
	if err != nil {
		return err
	}

	if err := util.CreateCBZ(files, chapters.OutputCBZPath(output, job.Series, job.Chapter)); err != nil {
		return err
	}

	if !keep {
		util.CleanupFolder(job.Dest)
	}
	return nil
}
