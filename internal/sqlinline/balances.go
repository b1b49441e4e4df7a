package sqlinline

const QDebitBalance = `--sql a1f6d4c8-29e7-4b53-80a2-6c9e1f3b7d50
update balances
set balance = balance - $2::bigint
where account = $1::text and balance >= $2::bigint;
`

const QCreditBalance = `--sql 6d2b8e40-f153-47ca-9b86-e7a5c4d90f12
insert into balances(account, balance)
values ($1::text, $2::bigint)
on conflict (account) do update set balance = balances.balance + excluded.balance;
`

const QGetBalance = `--sql f83a1c59-46d0-4e27-b9f4-57e8b2a6c301
select coalesce((select balance from balances where account = $1::text), 0)::bigint;
`
