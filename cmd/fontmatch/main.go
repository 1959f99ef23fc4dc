// Command fontmatch finds free alternatives to a font by comparing glyph
// shapes. It scores the reference font against the most popular families in
// the Google Fonts catalog and prints the closest matches; the lower the
// difference percentage, the better the match, with 0% an exact match.
//
// Only TrueType (glyf) outlines are supported; CFF-flavored .otf files are
// skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/png"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/fontmatch/fontmatch"
	"github.com/fontmatch/fontmatch/googlefonts"
)

func main() {
	fontPath := flag.String("font", "",
		"Path to the reference TTF file (required)")
	comparePath := flag.String("compare", "",
		"Path to a second local TTF; compares the two directly "+
			"instead of searching the catalog")
	apiKey := flag.String("key", "",
		"Google Fonts API key (or set FONTMATCH_API_KEY)")
	chars := flag.String("chars", fontmatch.DefaultChars,
		"Characters used for matching; pick the most distinctive ones")
	lower := flag.Int("lower", 1,
		"First catalog position to search, by popularity")
	upper := flag.Int("upper", 50,
		"Catalog position to stop searching at")
	top := flag.Int("top", 5,
		"Number of best matches to keep")
	workers := flag.Int("workers", 1,
		"Number of candidates to score in parallel")
	preview := flag.String("preview", "",
		"Write an overlay PNG of the best match's first character")
	previewSize := flag.Int("previewsize", 512,
		"Edge length of the preview image in pixels")
	verbose := flag.Bool("v", false,
		"Enable debug logging")
	flag.Parse()

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if *fontPath == "" {
		fmt.Println("Please provide the reference font using the -font flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	ref, err := fontmatch.LoadFont(*fontPath)
	if err != nil {
		log.Fatalf("loading reference font: %v", err)
	}

	matcher, err := fontmatch.NewMatcher(ref,
		fontmatch.WithChars(*chars),
		fontmatch.WithWorkers(*workers),
		fontmatch.WithLogger(log),
	)
	if err != nil {
		log.Fatalf("preparing matcher: %v", err)
	}

	if *comparePath != "" {
		compareLocal(log, matcher, *comparePath, *preview, *previewSize)
		return
	}

	key := *apiKey
	if key == "" {
		key = os.Getenv("FONTMATCH_API_KEY")
	}
	if key == "" {
		log.Fatal("a Google Fonts API key is required: " +
			"use -key or FONTMATCH_API_KEY")
	}
	searchCatalog(log, matcher, key, *lower, *upper, *top,
		*preview, *previewSize)
}

// compareLocal scores two local fonts against each other and prints a
// single difference percentage.
func compareLocal(log *logrus.Logger, m *fontmatch.Matcher,
	path, preview string, previewSize int) {

	cand, err := fontmatch.LoadFont(path)
	if err != nil {
		log.Fatalf("loading comparison font: %v", err)
	}
	score, err := m.Compare(cand)
	if err != nil {
		log.Fatalf("comparing fonts: %v", err)
	}
	fmt.Printf("Difference: %.2f%%\n", score)

	if preview != "" {
		if err := writePreview(m, cand, preview, previewSize); err != nil {
			log.Errorf("writing preview: %v", err)
		}
	}
}

// searchCatalog streams a window of the Google Fonts catalog through the
// matcher and prints the resulting scoreboard.
func searchCatalog(log *logrus.Logger, m *fontmatch.Matcher, key string,
	lower, upper, top int, preview string, previewSize int) {

	ctx := context.Background()
	client := googlefonts.NewClient(key)
	client.Log = log

	catalog, err := client.Catalog(ctx)
	if err != nil {
		log.Fatalf("fetching catalog: %v", err)
	}

	board := fontmatch.NewScoreboard(top)
	candidates := make(chan fontmatch.Candidate)
	done := make(chan struct{})
	go func() {
		m.Run(candidates, board)
		close(done)
	}()

	for _, w := range catalog.Range(lower, upper) {
		url, _ := w.Regular()
		data, err := client.Download(ctx, url)
		if err != nil {
			log.WithError(err).Warnf("skipping %s", w.Family)
			continue
		}
		font, err := fontmatch.ParseFont(url, data)
		if err != nil {
			log.WithError(err).Warnf("skipping %s", w.Family)
			continue
		}
		candidates <- fontmatch.Candidate{Label: url, Source: font}
	}
	close(candidates)
	<-done

	fmt.Println("\nYour Fonts are here:")
	fmt.Print(board.Report())

	if preview == "" {
		return
	}
	if best := board.Entries()[0]; best.Label != "" {
		data, err := client.Download(ctx, best.Label)
		if err != nil {
			log.Errorf("fetching best match for preview: %v", err)
			return
		}
		font, err := fontmatch.ParseFont(best.Label, data)
		if err != nil {
			log.Errorf("parsing best match for preview: %v", err)
			return
		}
		if err := writePreview(m, font, preview, previewSize); err != nil {
			log.Errorf("writing preview: %v", err)
		}
	}
}

// writePreview renders the reference and candidate shapes of the matcher's
// first character into an overlay PNG.
func writePreview(m *fontmatch.Matcher, cand fontmatch.OutlineSource,
	path string, size int) error {

	c := m.Chars()[0]
	ref, scaled, err := m.NormalizedRegions(cand, c)
	if err != nil {
		return err
	}
	img := fontmatch.RenderOverlay(ref, scaled, size)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}
	fmt.Printf("Preview written to %s\n", path)
	return nil
}
