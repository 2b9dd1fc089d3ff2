package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/brogergvhs/mangatown/internal/chapters"
	"github.com/brogergvhs/mangatown/internal/config"
	"github.com/brogergvhs/mangatown/internal/downloader"
	"github.com/brogergvhs/mangatown/internal/providers"
	"github.com/brogergvhs/mangatown/internal/providers/mangatown"
	"github.com/brogergvhs/mangatown/internal/ui"
	"github.com/brogergvhs/mangatown/internal/util"
)

// session is what list and download share: the merged config, a logger
// and a client for the site.
type session struct {
	cfg    *config.Config
	used   string
	log    *ui.Logger
	client *mangatown.Client
}

func newSession(opts config.Options) (*session, error) {
	opts.IgnoreConfig = flagIgnoreConfig
	opts.Debug = opts.Debug || flagDebug

	cfg, used, err := config.LoadMerged(opts)
	if err != nil {
		return nil, err
	}

	logSvc := ui.NewLogger(cfg.Debug)

	httpClient, err := util.NewHTTPClient(util.HTTPClientOptions{
		Timeout:     30 * time.Second,
		UserAgent:   util.PickUserAgent(cfg.UserAgent),
		Cookie:      cfg.Cookie,
		CookieFile:  cfg.CookieFile,
		Cloudflare:  cfg.Cloudflare,
		DebugLogger: logSvc,
	})
	if err != nil {
		return nil, err
	}

	fetcher := downloader.NewHTTPFetcher(httpClient, cfg.Retries, "https://"+mangatown.Host+"/")
	client := mangatown.NewClient(fetcher, downloader.FileStore{}, mangatown.WithLogger(logSvc))

	return &session{cfg: cfg, used: used, log: logSvc, client: client}, nil
}

// query resolves the series and chapter ranges from arguments, flags and
// the config defaults, in that order.
func (s *session) query(args []string, chaptersFlag string) (providers.SeriesQuery, error) {
	series := strings.TrimSpace(strings.Join(args, " "))
	if series == "" {
		series = s.cfg.DefaultSeries
	}
	if series == "" {
		return providers.SeriesQuery{}, fmt.Errorf("missing series name and no default_series in config")
	}

	spec := chaptersFlag
	if spec == "" {
		spec = s.cfg.DefaultChapters
	}

	ranges, err := chapters.ParseRanges(spec)
	if err != nil {
		return providers.SeriesQuery{}, err
	}

	return providers.SeriesQuery{Series: series, Ranges: ranges}, nil
}

func chapterRows(list []providers.Chapter) [][]string {
	rows := make([][]string, 0, len(list))
	for _, ch := range list {
		rows = append(rows, []string{chapters.FormatNumber(ch.Number), ch.URL})
	}
	return rows
}

func rangesString(q providers.SeriesQuery) string {
	parts := make([]string, 0, len(q.Ranges))
	for _, r := range q.Ranges {
		parts = append(parts, r.String())
	}
	return strings.Join(parts, ",")
}
