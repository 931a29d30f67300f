// hal9000 is a scripted terminal chatbot.
package main

import "github.com/linanwx/hal9000/cmd"

func main() {
	cmd.Execute()
}
