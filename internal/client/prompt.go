package client

import (
	"bufio"
	"fmt"
	"io"
)

// PromptForSecret asks for an account name and its shared secret.
func PromptForSecret(scanner *bufio.Scanner, out io.Writer) (name, sharedSecret string) {
	fmt.Fprint(out, "Enter account name: ")
	scanner.Scan()
	name = scanner.Text()

	fmt.Fprint(out, "Enter shared secret (base64): ")
	scanner.Scan()
	sharedSecret = scanner.Text()

	return name, sharedSecret
}
