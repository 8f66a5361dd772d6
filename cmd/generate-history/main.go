package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/storage"
)

var hosts = []string{
	"go.dev", "pkg.go.dev", "github.com", "news.ycombinator.com",
	"developer.mozilla.org", "en.wikipedia.org", "example.com", "lobste.rs",
}

var pages = []string{
	"", "docs", "blog", "search", "issues", "pulls", "wiki/Tree_(data_structure)",
	"ref/mem", "settings", "about",
}

func main() {
	numVisits := flag.Int("visits", 1000, "Number of visits to generate")
	numSessions := flag.Int("sessions", 50, "Number of browsing sessions")
	repeat := flag.Float64("repeat", 0.2, "Chance that a visit reloads the previous page")
	seed := flag.Uint64("seed", 1, "Random seed")
	output := flag.String("output", "history.json", "Output file path, .yaml for YAML")
	flag.Parse()

	if *numVisits < 1 || *numSessions < 1 {
		fmt.Fprintf(os.Stderr, "visits and sessions must be at least 1\n")
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed))
	tree, err := generateHistory(rng, *numVisits, *numSessions, *repeat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate history: %v\n", err)
		os.Exit(1)
	}

	if err := storage.Open(*output).Save(tree); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write file: %v\n", err)
		os.Exit(1)
	}

	info, err := os.Stat(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to stat file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated history with %d visits in %d sessions\n", *numVisits, *numSessions)
	fmt.Printf("Saved to: %s\n", *output)
	fmt.Printf("File size: %.2f MB\n", float64(info.Size())/(1024*1024))
}

// generateHistory lists visits in date order. Sessions follow each other
// and a visit sometimes repeats the previous page, which the viewer can
// collapse.
func generateHistory(rng *rand.Rand, numVisits, numSessions int, repeat float64) (*model.ResultTree, error) {
	root := model.NewQuery("place:type=1&sort=4", "History")
	root.SetContainerOpen(true)

	at := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	perSession := max(numVisits/numSessions, 1)
	var uri, title string
	for i := 0; i < numVisits; i++ {
		session := int64(min(i/perSession, numSessions-1) + 1)
		if i > 0 && i%perSession == 0 {
			at = at.Add(time.Duration(1+rng.IntN(12)) * time.Hour)
		}
		if uri == "" || rng.Float64() >= repeat {
			uri, title = randomPage(rng)
		}
		at = at.Add(time.Duration(5+rng.IntN(300)) * time.Second)
		root.AddChild(model.NewVisit(uri, title, at, session))
	}

	return model.NewResultTree(root, model.QueryOptions{
		ResultType:   model.ResultsAsVisit,
		ShowSessions: true,
	})
}

func randomPage(rng *rand.Rand) (uri, title string) {
	host := hosts[rng.IntN(len(hosts))]
	page := pages[rng.IntN(len(pages))]
	uri = "https://" + host + "/" + page
	if page == "" {
		return uri, host
	}
	return uri, fmt.Sprintf("%s - %s", page, host)
}
