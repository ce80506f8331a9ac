package main

import "cinemarathi_backend/internal/app"

func main() {
	app.Run()
}
