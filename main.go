package main

import ghostcomment "github.com/ghostcomment/ghostcomment/cmd/ghostcomment"

func main() { ghostcomment.Execute() }
