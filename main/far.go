package main

import (
	"flag"
	"fmt"
	"os"

	far "github.com/JorgeNachtigall/the-sims-far-file-extractor"
	"github.com/sirupsen/logrus"
)

func main() {
	archivePath := flag.String("archive", "", "Defines the FAR archive to read")
	out := flag.String("out", "", "Defines the output directory for extracted files")
	list := flag.Bool("list", false, "Prints the archive member listing")
	dump := flag.Bool("dump", false, "Prints the parsed manifest as JSON")
	extract := flag.String("extract", "", "Extracts only the named member")
	verbose := flag.Bool("verbose", false, "Prints additional information")
	flag.Parse()

	if *archivePath == "" {
		fmt.Println("The archive file cannot be empty")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	reader := far.NewReader()
	archive, err := reader.ReadArchive(*archivePath)
	if err != nil {
		logrus.Fatalf("cannot read archive %s: %v", *archivePath, err)
	}

	switch {
	case *list:
		archive.List(os.Stdout)

	case *dump:
		if err := far.WriteManifestJSON(archive, os.Stdout); err != nil {
			logrus.Fatalf("cannot dump manifest of %s: %v", *archivePath, err)
		}

	default:
		if *out == "" {
			fmt.Println("The output directory cannot be empty")
			flag.PrintDefaults()
			os.Exit(1)
		}

		extractor := far.NewExtractor(nil, logrus.StandardLogger())
		if *extract != "" {
			err = extractor.ExtractNamed(archive, *extract, *out)
		} else {
			err = extractor.ExtractAll(archive, *out)
		}
		if err != nil {
			logrus.Fatalf("extraction from %s failed: %v", *archivePath, err)
		}
	}
}
