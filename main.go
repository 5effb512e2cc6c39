package main

import "github.com/labtrack/lims/cmd/app"

func main() {
	app.Run()
}
