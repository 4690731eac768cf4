package main

import "github.com/Egor213/LogOps/internal/app"

func main() {
	app.Run()
}
