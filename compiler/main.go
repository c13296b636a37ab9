package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/nands/jackc/compiler/internal"
)

var (
	path   = flag.String("path", ".", "the jack file, or the directory of jack files, to be compiled")
	mode   = flag.String("mode", internal.ModeVM, "output to generate: tokens, tree or vm")
	outDir = flag.String("o", "", "the directory of generated files, defaults to the directory of the sources")
	trace  = flag.String("trace", "error", "trace level: error, info or debug")
)

func main() {
	flag.Parse()
	gtrace.SyntaxTracer = gologadapter.New()
	gtrace.SyntaxTracer.SetTraceLevel(tracing.TraceLevelFromString(*trace))
	err := internal.Compile(*path, internal.Options{Mode: *mode, OutDir: *outDir})
	if err != nil {
		fmt.Printf("Error: %+v\n", err)
		os.Exit(1)
	}
}
