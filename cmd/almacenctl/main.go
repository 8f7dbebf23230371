// Command almacenctl tareas de operación sobre el almacenamiento del almacén:
// migraciones, creación de las posiciones, estadísticas y exportación del histórico.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
