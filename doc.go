// Package edn reads the scalar values of EDN text (extensible data notation) from a
// character stream, one token at a time, without holding the whole input in memory.
//
// It is the lexical core under a structural parser: Read returns nil, booleans,
// numbers, characters, strings and symbols, and hands every reserved character it
// does not handle itself (collection delimiters, '#', ':', ';', ...) back to the
// caller as a KindMacro value. After a ':' the caller may call ReadKeyword.
//
// examples:
//
//	nil true false 42 -0x1F 0777 36rZZ 12345678901234567890 7N 1.5 -1e-3 2.50M 22/7
//	\a \newline λ \o101 "tab\there é \101" sym ns/name / +
//
// Grammar of the scalar tokens (<term> is whitespace, a macro character or end of input;
// commas are whitespace):
//
//	<number>      :: [ "+" | "-" ] ( <decimal> | <octal> | <hex> | <radix> | <float> | <ratio> ) ;
//	<decimal>     :: ( "0" | <digit1-9> <digit>* ) [ "N" | "M" ] ;
//	<octal>       :: "0" <octal-digit>+ [ "N" | "M" ] ;
//	<hex>         :: "0" ( "x" | "X" ) <hex-digit>* [ "N" ] ;
//	<radix>       :: <digit1-9> [ <digit> ] ( "r" | "R" ) <alnum>* ;      base 2 to 36
//	<float>       :: <digit>+ ( "." <digit>* [ <exponent> ] | <exponent> ) [ "M" ] ;
//	<exponent>    :: ( "e" | "E" ) [ "+" | "-" ] <digit>+ ;
//	<ratio>       :: <digit>+ "/" <digit>+ ;
//
//	<string>      :: "\"" ( <any rune but "\"" or "\\"> | <escape> )* "\"" ;
//	<escape>      :: "\\" ( "n" | "t" | "r" | "b" | "f" | "\"" | "\\" | "u" <hex-digit>{4} | <octal-digit>{1,3} ) ;
//
//	<char>        :: "\\" ( <rune> | "u" <hex-digit>{4} | "o" <octal-digit>{1,3}
//	                 | "newline" | "return" | "space" | "tab" | "backspace" | "formfeed" ) ;
//
//	<symbol>      :: "/" | <name> | <name> "/" <name> ;
//	<name>        :: <any rune but <term> or "/">+ ;
//
// Integers that do not fit in 64 bits are promoted to big.Int; N forces big.Int and M
// forces a decimal.Decimal. Ratios are reduced and collapse to integers when the
// denominator is 1. An octal literal containing 8 or 9 is an error unless it turns out
// to be a float or ratio, which are always decimal.
package edn
