package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

type rephraseRequest struct {
	Text           string `json:"text"`
	WebpageContent string `json:"webpageContent,omitempty"`
}

type rephraseResponse struct {
	Text string `json:"text"`
}

type result struct {
	Sample    string
	Chars     int
	Run       int
	ElapsedMs int64
	OutChars  int
	Error     string
}

func main() {
	url := flag.String("url", "http://localhost:5000", "API base URL")
	apiKey := flag.String("api-key", "", "API key (optional)")
	runs := flag.Int("runs", 3, "Number of runs per sample")
	quality := flag.Bool("quality", false, "Quality mode: show input/output for each sample (1 run, no timing table)")
	jsonOut := flag.String("json", "", "Write results to JSON file (e.g. results.json)")
	warmup := flag.Bool("warmup", false, "Run one warmup request per sample before measuring")
	flag.Parse()

	baseURL := strings.TrimRight(*url, "/")
	client := &http.Client{Timeout: 180 * time.Second}

	if *quality {
		runQualityMode(client, baseURL, *apiKey)
		return
	}

	fmt.Printf("Benchmarking against %s (%d runs per sample", baseURL, *runs)
	if *warmup {
		fmt.Print(", warmup enabled")
	}
	fmt.Println(")")

	var results []result
	var failures int
	for _, sample := range Samples {
		if *warmup {
			fmt.Printf("  Warming up %s...", sample.Name)
			w := benchmark(client, baseURL, *apiKey, sample, 0)
			if w.Error != "" {
				fmt.Printf(" FAILED (%s)\n", w.Error)
			} else {
				fmt.Printf(" %dms (discarded)\n", w.ElapsedMs)
			}
		}
		for run := 1; run <= *runs; run++ {
			fmt.Printf("  Running %s (run %d/%d)...", sample.Name, run, *runs)
			r := benchmark(client, baseURL, *apiKey, sample, run)
			results = append(results, r)
			if r.Error != "" {
				fmt.Printf(" FAILED (%s)\n", r.Error)
				failures++
			} else {
				fmt.Printf(" %dms\n", r.ElapsedMs)
			}
		}
	}

	fmt.Println()
	printTable(results)
	printSummary(results)

	if *jsonOut != "" {
		if err := writeJSON(*jsonOut, results, baseURL); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
		} else {
			fmt.Printf("\nResults written to %s\n", *jsonOut)
		}
	}

	if failures > 0 {
		os.Exit(1)
	}
}

// send posts one sample and returns the HTML answer.
func send(client *http.Client, baseURL, apiKey string, sample Sample) (string, error) {
	payload, err := json.Marshal(rephraseRequest{Text: sample.Text, WebpageContent: sample.Context})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+"/rephrase", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var rr rephraseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return "", err
	}
	return rr.Text, nil
}

func benchmark(client *http.Client, baseURL, apiKey string, sample Sample, run int) result {
	r := result{Sample: sample.Name, Chars: len(sample.Text) + len(sample.Context), Run: run}

	start := time.Now()
	out, err := send(client, baseURL, apiKey, sample)
	r.ElapsedMs = time.Since(start).Milliseconds()
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.OutChars = len(out)
	return r
}

func printTable(results []result) {
	fmt.Println("| Sample | Chars | Run | Elapsed (ms) | Out Chars |")
	fmt.Println("|--------|-------|-----|--------------|-----------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Printf("| %-7s | %5d | %d | %12s | %9s |\n", r.Sample, r.Chars, r.Run, "FAIL", "-")
			continue
		}
		fmt.Printf("| %-7s | %5d | %d | %12d | %9d |\n", r.Sample, r.Chars, r.Run, r.ElapsedMs, r.OutChars)
	}
}

// runQualityMode prints each answer converted back to Markdown, which reads
// better in a terminal than raw HTML.
func runQualityMode(client *http.Client, baseURL, apiKey string) {
	fmt.Printf("Quality test against %s\n", baseURL)
	fmt.Println(strings.Repeat("=", 72))

	var failures int
	for i, sample := range QualitySamples {
		fmt.Printf("\n--- %d/%d: %s ---\n", i+1, len(QualitySamples), sample.Name)
		fmt.Printf("IN:  %s\n", sample.Text)
		if sample.Context != "" {
			fmt.Printf("CTX: %s\n", sample.Context)
		}

		start := time.Now()
		out, err := send(client, baseURL, apiKey, sample)
		if err != nil {
			fmt.Printf("ERR: %s\n", err)
			failures++
			continue
		}

		md, err := htmltomarkdown.ConvertString(out)
		if err != nil {
			md = out
		}
		fmt.Printf("OUT:\n%s\n", md)
		fmt.Printf("     [%dms, %d html chars]\n", time.Since(start).Milliseconds(), len(out))
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 72))
	fmt.Printf("Done: %d/%d passed\n", len(QualitySamples)-failures, len(QualitySamples))
	if failures > 0 {
		os.Exit(1)
	}
}

func printSummary(results []result) {
	var ok []result
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}

	failed := len(results) - len(ok)

	if len(ok) == 0 {
		fmt.Printf("\nSummary: all %d runs failed\n", len(results))
		return
	}

	var totalElapsed int64
	minR, maxR := ok[0], ok[0]
	for _, r := range ok {
		totalElapsed += r.ElapsedMs
		if r.ElapsedMs < minR.ElapsedMs {
			minR = r
		}
		if r.ElapsedMs > maxR.ElapsedMs {
			maxR = r
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Avg elapsed: %dms\n", totalElapsed/int64(len(ok)))
	fmt.Printf("- Min elapsed: %dms (%s)\n", minR.ElapsedMs, minR.Sample)
	fmt.Printf("- Max elapsed: %dms (%s)\n", maxR.ElapsedMs, maxR.Sample)
	fmt.Printf("- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), failed)
}

type jsonReport struct {
	Timestamp string   `json:"timestamp"`
	URL       string   `json:"url"`
	Results   []result `json:"results"`
}

func writeJSON(path string, results []result, baseURL string) error {
	report := jsonReport{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       baseURL,
		Results:   results,
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
