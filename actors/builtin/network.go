package builtin

// Network name used when the host does not configure one.
const DefaultNetworkName = "leakr-devnet"

const SecondsInHour = 3600
const SecondsInDay = 86400

// Bitwidth of the HAMTs backing maps and sets in actor state.
const DefaultHamtBitwidth = 5

// Bitwidth of the AMTs backing arrays, such as message event logs.
const DefaultAmtBitwidth = 5
