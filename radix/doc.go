/*
Package radix holds the constants and small integer helpers shared by the
relaxed radix-balanced tree packages of collectable.

All functions are pure, with the single exception of NextID, which hands out
process-wide unique ids.

# BSD License

Copyright (c) The collectable Authors

Please refer to the LICENSE file for details.
*/
package radix
