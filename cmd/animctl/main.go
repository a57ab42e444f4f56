// Command animctl validates and runs animation scenario scripts headlessly.
package main

func main() {
	Execute()
}
