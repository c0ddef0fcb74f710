package main

// Sample represents a benchmark request.
type Sample struct {
	Name    string
	Text    string
	Context string
}

// Samples mix bare rephrase requests with context-grounded questions at
// varying context sizes. Used by default benchmark mode for latency.
var Samples = []Sample{
	{
		Name: "tiny",
		Text: "the books is found in library",
	},
	{
		Name: "short",
		Text: "Can you make this more formal: hey guys, the deploy went ok yesterday, search is kinda slow tho, looking at it today",
	},
	{
		Name: "context",
		Text: "What are the opening hours?",
		Context: `Welcome to the Riverside Public Library. We are open Monday to Friday from 9am to 8pm,
and Saturday from 10am to 4pm. The library is closed on Sundays and public holidays.
Members can borrow up to 10 items at a time for a period of three weeks.`,
	},
	{
		Name: "html",
		Text: "Summarize the main points of this article",
		Context: `<html><head><title>Release notes</title></head><body>
<nav><a href="/">Home</a></nav>
<article>
<h1>Version 2.4 release notes</h1>
<p>This release improves startup time by caching the dependency graph between runs.</p>
<p>The configuration loader now accepts environment overrides for every option.</p>
<ul><li>Faster cold start</li><li>New metrics endpoint</li><li>Removed the legacy XML exporter</li></ul>
</article>
<footer>Copyright</footer>
</body></html>`,
	},
}

// QualitySamples are printed with their answers for manual review.
var QualitySamples = []Sample{
	{Name: "grammar", Text: "me and him goes to the office everyday for doing the work"},
	{Name: "tone", Text: "Rewrite politely: send me the report now, it's late again"},
	{Name: "irrelevant-context", Text: "Rephrase: the meeting is moved to friday", Context: "Our bakery offers fresh sourdough every morning."},
	{Name: "insight", Text: "What is the key takeaway?", Context: "Teams that ship small changes daily recover from incidents faster than teams that ship large batches monthly."},
}
