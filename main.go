package main

import "github.com/zoe20230520/audiocutter/cmd"

func main() {
	cmd.Execute()
}
