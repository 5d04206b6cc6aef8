package main

import (
	"flag"
	"fmt"
	"os"

	"chosenoffset.com/weatherrun/internal/placeholders"
)

func main() {
	out := flag.String("out", "assets", "Directory to write the sprites into")
	flag.Parse()

	fmt.Println("Weather Run Placeholder Sprite Generator")
	fmt.Println("========================================")

	paths, err := placeholders.Generate(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, p := range paths {
		fmt.Printf("  wrote %s\n", p)
	}
	fmt.Println("Done! Run the game to see the placeholders in action.")
}
