package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"supplierboard/internal"
	"supplierboard/internal/config"
	"supplierboard/internal/pipeline"
	"supplierboard/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath, cfg.CacheMaxEntries)
	must(err)
	defer db.Close()

	svc := pipeline.NewRankingService(db, cfg)

	cmd := os.Args[1]
	switch cmd {
	case "rank":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "spreadsheet path (.xlsx .csv .html .eml)")
		out := fs.String("out", "", "optional output xlsx path")
		sortBy := fs.String("sort", internal.SumComposite, "summary column to sort by")
		asc := fs.Bool("asc", false, "sort ascending")
		vendors := fs.String("vendors", "", "comma-separated vendor allow list")
		product := fs.String("product", "", "exact product match")
		leadMin := fs.Float64("lead-min", math.NaN(), "minimum lead time, days")
		leadMax := fs.Float64("lead-max", math.NaN(), "maximum lead time, days")
		apMin := fs.Float64("ap-min", math.NaN(), "minimum AP terms, days")
		apMax := fs.Float64("ap-max", math.NaN(), "maximum AP terms, days")
		costMin := fs.Float64("cost-min", math.NaN(), "minimum item cost")
		costMax := fs.Float64("cost-max", math.NaN(), "maximum item cost")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		result := loadDataset(svc, *input)
		filter := pipeline.Filter{
			Vendors:  splitVendors(*vendors),
			Product:  strings.TrimSpace(*product),
			LeadTime: rangeOf(*leadMin, *leadMax),
			APTerms:  rangeOf(*apMin, *apMax),
			ItemCost: rangeOf(*costMin, *costMax),
		}

		summaries, err := svc.Rank(result.Dataset, filter, *sortBy, *asc)
		must(err)
		if len(summaries) == 0 {
			fmt.Println("no data after filtering")
			return
		}

		printSummaries(summaries)
		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportSummariesToXLSX(summaries, *out))
			fmt.Printf("exported %d rows to %s\n", len(summaries), *out)
		}
	case "wins":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "spreadsheet path (.xlsx .csv .html .eml)")
		out := fs.String("out", "", "optional output xlsx path")
		vendors := fs.String("vendors", "", "comma-separated vendor allow list")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		result := loadDataset(svc, *input)
		if _, ok := pipeline.ItemColumn(result.Dataset.Columns); !ok {
			fmt.Println("no product column in input; nothing to tally")
			return
		}

		wins := svc.Wins(result.Dataset, pipeline.Filter{Vendors: splitVendors(*vendors)})
		if len(wins) == 0 {
			fmt.Println("no scoreable product partitions")
			return
		}

		fmt.Printf("%-30s %s\n", "Vendor", "Wins")
		for _, w := range wins {
			fmt.Printf("%-30s %d\n", w.Vendor, w.Wins)
		}
		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportWinsToXLSX(wins, *out))
			fmt.Printf("exported %d rows to %s\n", len(wins), *out)
		}
	case "normalize":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "spreadsheet path (.xlsx .csv .html .eml)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}

		result := loadDataset(svc, *input)
		ds := result.Dataset
		fmt.Printf("header row: %d\n", ds.HeaderRow)
		fmt.Printf("records: %d (cached=%v)\n", len(ds.Records), result.Cached)
		cols := make([]string, 0, len(ds.Columns))
		for col := range ds.Columns {
			cols = append(cols, col)
		}
		sort.Strings(cols)
		fmt.Printf("canonical columns: %s\n", strings.Join(cols, ", "))
		fmt.Printf("vendors: %s\n", strings.Join(pipeline.Vendors(ds.Records), ", "))
	default:
		usage()
		os.Exit(1)
	}
}

func loadDataset(svc *pipeline.RankingService, input string) pipeline.LoadResult {
	blob, err := os.ReadFile(input)
	must(err)
	result, err := svc.LoadDataset(input, blob)
	must(err)
	if len(result.Dataset.Records) == 0 {
		fmt.Println("no data rows in input")
		os.Exit(0)
	}
	return result
}

func printSummaries(summaries []internal.SupplierSummary) {
	fmt.Printf("%-30s %6s %10s %9s %10s %12s %7s\n",
		"Vendor", "Orders", "AvgLead", "AvgAP", "AvgCost", "TotalSpend", "Score")
	for _, s := range summaries {
		fmt.Printf("%-30s %6d %10s %9s %10s %12.0f %7.3f\n",
			s.Vendor, s.Orders,
			fmtFloat(s.AvgLeadDays, 1), fmtFloat(s.AvgAPTerms, 0), fmtFloat(s.AvgItemCost, 2),
			s.TotalSpend, s.CompositeScore)
	}
}

func fmtFloat(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

func splitVendors(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func rangeOf(min, max float64) *pipeline.Range {
	if math.IsNaN(min) && math.IsNaN(max) {
		return nil
	}
	r := pipeline.Range{Min: math.Inf(-1), Max: math.Inf(1)}
	if !math.IsNaN(min) {
		r.Min = min
	}
	if !math.IsNaN(max) {
		r.Max = max
	}
	return &r
}

func usage() {
	fmt.Println("usage: supplierboard <command>")
	fmt.Println("commands:")
	fmt.Println("  rank --input=orders.xlsx [--vendors=A,B] [--product=X] [--lead-min=N --lead-max=N]")
	fmt.Println("       [--ap-min=N --ap-max=N] [--cost-min=N --cost-max=N] [--sort=Composite_Score] [--asc] [--out=result.xlsx]")
	fmt.Println("  wins --input=orders.xlsx [--vendors=A,B] [--out=wins.xlsx]")
	fmt.Println("  normalize --input=orders.xlsx")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
