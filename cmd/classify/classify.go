// Package classify handles category classification commands
package classify

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"fjacquet/finanza/internal/categorizer"
)

var label string

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify [text...]",
	Short: "Classify text into a spending category",
	Long: `Classify a category label or free text into one of the known spending
categories. Unknown input falls back to OTHER.`,
	Run: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&label, "label", "l", "", "Classify an exact category label instead of free text")
}

func classifyFunc(cmd *cobra.Command, args []string) {
	if label != "" {
		cat := categorizer.Classify(label)
		fmt.Printf("%s (%s)\n", cat, cat.Display())
		return
	}

	text := strings.Join(args, " ")
	cat := categorizer.ClassifyFreeText(text, "")
	fmt.Printf("%s (%s)\n", cat, cat.Display())
}
