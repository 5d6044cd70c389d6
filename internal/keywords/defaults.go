package keywords

var defaultUrgent = []string{
	"swap",
	"transfer",
	"transaction",
	"deposit",
	"withdraw",
	"mint",
	"stake",
	"unstake",
	"claim",
	"failed",
	"stuck",
	"pending",
	"reverted",
	"not received",
	"error",
	"timeout",
	"disappeared",
	"metamask",
	"trust wallet",
	"coinbase",
	"binance",
	"kraken",
	"kucoin",
	"cex",
	"dex",
	"nft",
	"bridge",
	"help",
	"support",
	"urgent",
	"anyone",
	"how to fix",
	"assistance",
	"issue",
	"problem",
	"feedback",

	// Transactions
	"transaction failed",
	"tx failed",
	"transfer failed",
	"transaction error",
	"transaction stuck",
	"tx stuck",
	"pending transaction",
	"not confirmed",
	"tx not found",
	"transaction reverted",
	"failed to send tx",

	// Swaps & DEX
	"swap failed",
	"swap error",
	"swap stuck",
	"cannot swap",
	"swap pending",
	"dex error",
	"liquidity issue",
	"slippage too high",
	"swap rejected",
	"insufficient funds for swap",
	"pair not found",

	// Deposits & Withdrawals
	"deposit not received",
	"withdrawal failed",
	"withdraw stuck",
	"withdraw pending",
	"funds not received",
	"deposit failed",
	"cannot deposit",
	"cannot withdraw",
	"withdraw rejected",

	// Missing funds/balance
	"tokens not received",
	"coins missing",
	"balance not updated",
	"missing funds",
	"lost funds",
	"wallet empty",
	"funds disappeared",

	// Gas/network issues
	"gas fee too high",
	"out of gas",
	"network congested",
	"rpc error",
	"nonce too low",
	"replacement transaction underpriced",
	"insufficient gas",
	"network timeout",
	"transaction pending too long",

	// Wallet issues
	"wallet not connecting",
	"wallet error",
	"cannot connect wallet",
	"wallet issue",
	"metamask error",
	"trust wallet error",
	"wallet disconnected",
	"wrong network",
	"unsupported chain",

	// Bridges / cross-chain
	"bridge stuck",
	"bridge failed",
	"cross chain issue",
	"tokens stuck on bridge",
	"bridge pending",
	"bridge error",

	// CEX / centralized exchange issues
	"exchange issue",
	"binance issue",
	"coinbase issue",
	"kucoin issue",
	"bybit issue",
	"kraken issue",
	"cex deposit failed",
	"cex withdrawal failed",
	"cex transfer error",

	// NFT / smart contract issues
	"nft transfer failed",
	"mint failed",
	"contract error",
	"smart contract reverted",
	"cannot claim nft",
	"nft stuck",

	// DeFi / staking/farming
	"stake failed",
	"unstake failed",
	"yield farming issue",
	"rewards not received",
	"pool error",
	"cannot withdraw stake",

	// Urgency/help indicators
	"please help",
	"any solution",
	"need help",
	"urgent",
	"anyone help",
	"support needed",
	"issue with transaction",
	"how to fix",
	"help me",
	"error occurred",
	"cannot resolve",

	// Status / Errors
	"failed",
	"stuck",
	"pending",
	"reverted",
	"not received",
	"error",
	"timeout",
	"disappeared",

	// Platforms / Wallets
	"metamask",
	"trust wallet",
	"coinbase",
	"binance",
	"kraken",
	"kucoin",
	"cex",
	"dex",
	"nft",
	"bridge",
}

var defaultMild = []string{
	"help",
	"support",
	"question",
	"anyone",
	"how to",
	"need help",
	"assistance",
	"issue",
}
