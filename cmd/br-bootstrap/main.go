package main

import "github.com/SamukeloGift/Brewery/cmd/br-bootstrap/cmd"

func main() {
	cmd.Execute()
}
