package main

import (
	"github.com/pyneda/wsdlwizard/cmd"
	"github.com/pyneda/wsdlwizard/internal/config"
)

func main() {
	config.LoadConfig()
	cmd.Execute()
}
