package connectors

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// desCBCEncrypt encrypts a payload with single DES in CBC mode and returns
// base64, the scheme Royal Slot Gaming still requires on its history API.
func desCBCEncrypt(plaintext, key, iv string) (string, error) {
	block, err := des.NewCipher([]byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to create DES cipher: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return "", fmt.Errorf("DES IV must be %d bytes, got %d", block.BlockSize(), len(iv))
	}

	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	encrypted := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, []byte(iv)).CryptBlocks(encrypted, padded)

	return base64.StdEncoding.EncodeToString(encrypted), nil
}

// desCBCDecrypt reverses desCBCEncrypt.
func desCBCDecrypt(encoded, key, iv string) (string, error) {
	encrypted, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode ciphertext: %w", err)
	}

	block, err := des.NewCipher([]byte(key))
	if err != nil {
		return "", fmt.Errorf("failed to create DES cipher: %w", err)
	}
	if len(iv) != block.BlockSize() {
		return "", fmt.Errorf("DES IV must be %d bytes, got %d", block.BlockSize(), len(iv))
	}
	if len(encrypted) == 0 || len(encrypted)%block.BlockSize() != 0 {
		return "", fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(encrypted))
	}

	decrypted := make([]byte, len(encrypted))
	cipher.NewCBCDecrypter(block, []byte(iv)).CryptBlocks(decrypted, encrypted)

	unpadded, err := pkcs7Unpad(decrypted, block.BlockSize())
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize || padding > len(data) {
		return nil, fmt.Errorf("invalid PKCS7 padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("invalid PKCS7 padding")
		}
	}
	return data[:len(data)-padding], nil
}

// md5Hex returns the lowercase hex MD5 digest used by several provider
// request-signing schemes.
func md5Hex(data string) string {
	sum := md5.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}
