package main

import "github.com/mkravets/link-shortener/internal/app"

func main() {
	app.Run()
}
