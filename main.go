/*
Copyright © 2025 Jake Rogers <code@supportoss.org>
*/
package main

import "github.com/JakeTRogers/zoneMate/cmd"

func main() {
	cmd.Execute()
}
