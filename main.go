package main

import "github.com/ValentinKolb/kvql/cmd"

func main() {
	cmd.Execute()
}
