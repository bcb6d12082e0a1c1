package kv

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	setCmd = &cobra.Command{
		Use:   "set [key] [value]",
		Short: "Sets the value for a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rpcClient.Set(args[0], []byte(args[1])); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
	getCmd = &cobra.Command{
		Use:   "get [key]",
		Short: "Reads the value for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := rpcClient.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", val)
			return nil
		},
	}
	delCmd = &cobra.Command{
		Use:   "del [key]",
		Short: "Deletes a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rpcClient.Del(args[0]); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
	hsetCmd = &cobra.Command{
		Use:   "hset [key] [field] [value]",
		Short: "Sets a field in a hash",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rpcClient.HSet(args[0], args[1], []byte(args[2])); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
	hgetCmd = &cobra.Command{
		Use:   "hget [key] [field]",
		Short: "Reads a field from a hash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := rpcClient.HGet(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", val)
			return nil
		},
	}
	hdelCmd = &cobra.Command{
		Use:   "hdel [key] [field]",
		Short: "Deletes a field from a hash",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rpcClient.HDel(args[0], args[1]); err != nil {
				return err
			}
			fmt.Println("OK")
			return nil
		},
	}
	rpushCmd = &cobra.Command{
		Use:   "rpush [key] [value]",
		Short: "Appends a value to the tail of a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := rpcClient.RPush(args[0], []byte(args[1]))
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
	lpushCmd = &cobra.Command{
		Use:   "lpush [key] [value]",
		Short: "Prepends a value to the head of a list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := rpcClient.LPush(args[0], []byte(args[1]))
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		},
	}
	lpopCmd = &cobra.Command{
		Use:   "lpop [key]",
		Short: "Pops a value from the head of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := rpcClient.LPop(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", val)
			return nil
		},
	}
	rpopCmd = &cobra.Command{
		Use:   "rpop [key]",
		Short: "Pops a value from the tail of a list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := rpcClient.RPop(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", val)
			return nil
		},
	}
	blpopCmd = &cobra.Command{
		Use:   "blpop [key...] [timeoutMS]",
		Short: "Blocks until one of the given lists has an element to pop",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := args[:len(args)-1]
			timeoutMS, err := strconv.ParseUint(args[len(args)-1], 10, 64)
			if err != nil {
				return fmt.Errorf("timeoutMS must be a number: %w", err)
			}

			key, val, timedOut, err := rpcClient.BLPop(
				uint64(time.Now().UnixNano()),
				keys,
				time.Duration(timeoutMS)*time.Millisecond,
			)
			if err != nil {
				return err
			}
			if timedOut {
				fmt.Println("(timeout)")
				return nil
			}
			fmt.Printf("key=%s, value=%s\n", key, val)
			return nil
		},
	}
	scanCmd = &cobra.Command{
		Use:   "scan [cursor] [count]",
		Short: "Advances a SCAN cursor over the keyspace",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("cursor must be a number: %w", err)
			}
			count, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("count must be a number: %w", err)
			}

			keys, next, err := rpcClient.Scan(cursor, count)
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			fmt.Printf("cursor=%d\n", next)
			return nil
		},
	}
)
