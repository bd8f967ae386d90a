package blockfees

import "github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"

// TotalFees returns the sum of the fees declared by the given transactions,
// skipping the first one. The first transaction of a block is its reward
// transaction and its fee field is never counted, whatever it holds.
// An empty list has no fees.
func TotalFees(transactions []externalapi.Transaction) int64 {
	var fees int64
	for i := 1; i < len(transactions); i++ {
		fees += transactions[i].Fee()
	}
	return fees
}

// BlockFees returns the total fees of block's transactions.
func BlockFees(block *externalapi.DomainBlock) int64 {
	return TotalFees(block.Transactions)
}
