package render

import (
	"fmt"
	"io"
	"os"

	f "fmt"
)

func Render(w io.Writer, id string) {
	fmt.Println(id)                 // want "fmt.Println writes to stdout, use an io.Writer"
	fmt.Printf("%s\n", id)          // want "fmt.Printf writes to stdout, use an io.Writer"
	f.Print(id)                     // want "fmt.Print writes to stdout, use an io.Writer"
	_, _ = fmt.Fprintln(w, id)
	_, _ = fmt.Fprintf(os.Stderr, "%s\n", id)
	_ = fmt.Sprint(id)
}
