// Command showfields prints the persisted fields of the user record.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/firstapp/accounts/internal/core/domain"
)

var rule = strings.Repeat("=", 50)

func printFields(w io.Writer, fields []string) {
	fmt.Fprintln(w, "User model fields:")
	fmt.Fprintln(w, rule)
	for i, f := range fields {
		fmt.Fprintf(w, "%2d. %s\n", i+1, f)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total fields: %d\n", len(fields))
}

func main() {
	printFields(os.Stdout, domain.UserFieldNames())
}
