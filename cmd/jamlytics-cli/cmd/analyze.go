package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"jamlytics-backend/lib/jamstats"
	"jamlytics-backend/lib/scrapers/itchio"
	"jamlytics-backend/services/analyzer"

	"github.com/dgraph-io/badger/v4"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <rate-link> <entries-link>",
	Short: "Scrapes a jam and prints where the rated game sits in its distribution.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := itchio.NewClient(itchio.ClientOptions{})
		if err != nil {
			log.Fatal(err)
		}
		cache, err := badger.Open(badger.DefaultOptions("").WithInMemory(true))
		if err != nil {
			log.Fatal(err)
		}
		defer cache.Close()

		service := analyzer.NewService(client, cache, nil, analyzer.Options{})
		result, err := service.Analyze(cmd.Context(), analyzer.Request{
			RateLink:    args[0],
			EntriesLink: args[1],
		})
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("%s — %s (%d entries)\n\n", result.JamTitle, result.GameTitle, result.NumGames)
		renderRatedGame(result)
		renderMoments(result)
		renderPoints(result.Points)
		if result.HasResults {
			renderTeamToScore(result.TeamToScore)
		}
	},
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

func formatMoment(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 4, 64)
}

func renderRatedGame(result analyzer.JamGraphResult) {
	t := newTable()
	t.AppendHeader(table.Row{"Rated game", result.RatedGame.Submission.Title})
	t.AppendRows([]table.Row{
		{"Position", fmt.Sprintf("%d / %d", result.RatedGame.Position, result.NumGames)},
		{"Percentile", result.RatedGame.Percentile},
		{"Ratings received", result.RatedGame.Submission.RatingCount},
		{"Coolness", result.RatedGame.Submission.Coolness},
		{"Karma", strconv.FormatFloat(result.RatedGame.Karma, 'f', 3, 64)},
		{"Team size", result.RatedGame.Submission.TeamSize},
	})
	if result.RatedGame.Result != nil {
		t.AppendRows([]table.Row{
			{"Final rank", result.RatedGame.Result.Rank},
			{"Score", result.RatedGame.Result.Score},
		})
	}
	t.Render()
}

func renderMoments(result analyzer.JamGraphResult) {
	rows := []struct {
		name     string
		ratings  jamstats.Moments
		coolness jamstats.Moments
	}{{"", result.RatingMoments, result.CoolnessMoments}}

	t := newTable()
	t.AppendHeader(table.Row{"Statistic", "Ratings", "Coolness"})
	for _, r := range rows {
		t.AppendRows([]table.Row{
			{"Mean", r.ratings.Mean, r.coolness.Mean},
			{"Median", r.ratings.Median, r.coolness.Median},
			{"Smallest", r.ratings.Smallest, r.coolness.Smallest},
			{"Biggest", r.ratings.Biggest, r.coolness.Biggest},
			{"Std deviation", strconv.FormatFloat(r.ratings.StdDev, 'f', 2, 64), strconv.FormatFloat(r.coolness.StdDev, 'f', 2, 64)},
			{"Skewness", formatMoment(r.ratings.Skewness), formatMoment(r.coolness.Skewness)},
			{"Kurtosis", formatMoment(r.ratings.Kurtosis), formatMoment(r.coolness.Kurtosis)},
		})
	}
	t.Render()
}

func renderPoints(points []jamstats.PercentilePoint) {
	t := newTable()
	t.AppendHeader(table.Row{"Percentile", "Ratings", "Avg coolness"})
	for _, p := range points {
		t.AppendRow(table.Row{p.Name, p.Rating, strconv.FormatFloat(p.Coolness, 'f', 1, 64)})
	}
	t.Render()
}

func renderTeamToScore(points []jamstats.TeamScorePoint) {
	t := newTable()
	t.AppendHeader(table.Row{"Percentile", "Team size", "Avg score", "Avg rank"})
	for _, p := range points {
		t.AppendRow(table.Row{
			p.Name,
			p.TeamSize,
			strconv.FormatFloat(p.AvgScore, 'f', 2, 64),
			strconv.FormatFloat(p.AvgRank, 'f', 1, 64),
		})
	}
	t.Render()
}
