// Package dendec encodes arbitrary bytes into a password-protected DNA
// symbol string and back.
//
// Encoding derives a cipher key and an alphabet permutation seed from
// the password with Argon2id, encrypts the payload with
// ChaCha20-Poly1305, and renders the resulting packet over the four
// bases A, T, G and C. Which of the 24 permutations maps 2-bit values
// to bases is itself password-dependent and never transmitted; decoding
// recovers it by trial-decoding the packet header under each candidate
// and accepting only the one the re-derived key material reproduces.
//
// Basic usage:
//
//	symbols, err := dendec.Encode([]byte("Hello, World!"), password)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	plaintext, err := dendec.Decode(symbols, password)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(string(plaintext))
//
// Encode and Decode are pure in-memory computations and safe for
// concurrent use; neither touches files or the network. Argon2id runs
// with fixed heavy cost parameters (64 MiB, three passes), so expect
// each call to cost a noticeable fraction of a second.
package dendec
