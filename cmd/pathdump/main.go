package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/novvoo/go-pathkit/pkg/graphics"
	"github.com/novvoo/go-pathkit/pkg/pdf"
	"github.com/novvoo/go-pathkit/pkg/shared"
)

var (
	firstPage   int
	lastPage    int
	dumpOps     bool
	dumpObjects bool
	printHelp   bool
)

func init() {
	flag.IntVar(&firstPage, "f", 1, "first page to dump")
	flag.IntVar(&lastPage, "l", 0, "last page to dump")
	flag.BoolVar(&dumpOps, "ops", false, "dump the raw operator sequence as well")
	flag.BoolVar(&dumpObjects, "objects", false, "dump the document's object tree instead of paths")
	flag.BoolVar(&printHelp, "h", false, "print usage information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: pathdump [options] <PDF-file>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fmt.Fprintf(os.Stderr, "  -f <int>    : first page to dump\n")
		fmt.Fprintf(os.Stderr, "  -l <int>    : last page to dump\n")
		fmt.Fprintf(os.Stderr, "  -ops        : dump the raw operator sequence as well\n")
		fmt.Fprintf(os.Stderr, "  -objects    : dump the document's object tree instead of paths\n")
		fmt.Fprintf(os.Stderr, "  -h          : print usage information\n")
	}
}

func main() {
	flag.Parse()
	if printHelp || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	doc, err := pdf.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "pathdump: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("PDF version %.1f\n", doc.Version)

	if dumpObjects {
		for _, id := range doc.ObjectIDs() {
			obj, err := doc.GetObject(id)
			if err != nil {
				continue
			}
			fmt.Printf("%v => %s\n", id, pdf.DebugStringIndent(obj))
		}
		return
	}

	pageIDs, err := doc.GetPageIDs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pathdump: %v\n", err)
		os.Exit(1)
	}

	last := lastPage
	if last == 0 || last > len(pageIDs) {
		last = len(pageIDs)
	}
	for number := firstPage; number <= last; number++ {
		if err := dumpPage(doc, pageIDs[number-1], number); err != nil {
			fmt.Fprintf(os.Stderr, "pathdump: page %d: %v\n", number, err)
			os.Exit(1)
		}
	}
}

func dumpPage(doc *pdf.Document, pageID pdf.ObjectID, number int) error {
	content, err := doc.PageContents(pageID)
	if err != nil {
		return err
	}
	ops, err := pdf.ParseContent(content)
	if err != nil {
		return err
	}
	box, err := doc.PageMediaBox(pageID)
	if err != nil {
		return err
	}

	fmt.Printf("Page %d %v (%.0f x %.0f)\n", number, pageID, box.Width(), box.Height())
	if dumpOps {
		for _, op := range ops {
			fmt.Printf("  op %#v\n", op)
		}
	}

	renderer := graphics.NewRenderer(shared.PageWidth(box.Width()), shared.PageHeight(box.Height()))
	drawings, texts, err := renderer.RenderAll(ops)
	if err != nil {
		return err
	}

	for _, drawing := range drawings {
		fmt.Printf("  %s (width %.2f, cap %s)\n",
			drawing.Kind, float32(drawing.Properties.LineWidth), drawing.Properties.LineCap)
		for _, event := range drawing.Events {
			fmt.Printf("    %s\n", formatEvent(event))
		}
	}
	for _, text := range texts {
		fmt.Printf("  text /%s %.1fpt at (%.2f, %.2f): %q\n",
			text.FontFamily, text.FontSize, text.Tx, text.Ty, text.Contents)
	}
	return nil
}

func formatEvent(event graphics.PathEvent) string {
	switch v := event.(type) {
	case graphics.Begin:
		return fmt.Sprintf("begin (%.3f, %.3f)", v.At.X, v.At.Y)
	case graphics.Line:
		return fmt.Sprintf("line (%.3f, %.3f) -> (%.3f, %.3f)", v.From.X, v.From.Y, v.To.X, v.To.Y)
	case graphics.Quadratic:
		return fmt.Sprintf("quadratic -> (%.3f, %.3f)", v.To.X, v.To.Y)
	case graphics.Cubic:
		return fmt.Sprintf("cubic -> (%.3f, %.3f)", v.To.X, v.To.Y)
	case graphics.End:
		return fmt.Sprintf("end first (%.3f, %.3f) last (%.3f, %.3f) close=%v",
			v.First.X, v.First.Y, v.Last.X, v.Last.Y, v.Close)
	}
	return fmt.Sprintf("%#v", event)
}
