// Command pgctl dumps the structure of binary developer files: COFF objects
// and libraries, PE images, PNG images, SID tunes and C64 disk images.
package main

func main() {
	execute()
}
