package tcl

// binaryLevels lists the binary operators from the tightest binding level
// to the loosest. Operators within a level associate left to right.
var binaryLevels = [...][]TokenKind{
	{tokenMul, tokenDiv, tokenMod},
	{tokenPlus, tokenMinus},
	{tokenShl, tokenShr},
	{tokenLT, tokenGT, tokenLE, tokenGE},
	{tokenStrEQ, tokenStrNE, tokenIn, tokenNi, tokenEQ, tokenNE},
	{tokenBitAnd},
	{tokenBitXor},
	{tokenBitOr},
	{tokenAnd},
	{tokenOr},
}

var unaryOperators = map[TokenKind]bool{
	tokenPlus:   true,
	tokenMinus:  true,
	tokenNot:    true,
	tokenBitNot: true,
}

func inLevel(kind TokenKind, level int) bool {
	for _, k := range binaryLevels[level] {
		if k == kind {
			return true
		}
	}
	return false
}
