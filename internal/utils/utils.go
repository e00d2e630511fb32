package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// CalculateDataMD5 returns the hex MD5 of data, used to name stored uploads
func CalculateDataMD5(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
