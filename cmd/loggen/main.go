package main

import "github.com/Egor213/LogOps/internal/loggen"

func main() {
	loggen.Execute()
}
