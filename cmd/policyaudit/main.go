package main

import "github.com/Kalledda/automated-ai-policy-auditor-demo/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
