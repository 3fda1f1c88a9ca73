// Commande jobtrack: migrations, données de démonstration et serveur.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
