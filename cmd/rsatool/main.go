package main

import "github.com/mahdiidarabi/textbook-rsa/cmd/rsatool/cmd"

func main() {
	cmd.Execute()
}
