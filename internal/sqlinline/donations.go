package sqlinline

const QInsertDonation = `--sql 5c8f2e71-a94d-4b06-8c13-f7e6a0d92b45
insert into donations(id, campaign_id, donor, amount, created_at)
values ($1::text, $2::text, $3::text, $4::bigint, $5::timestamptz);
`

const QGetDonation = `--sql 3b9d7a15-e62c-48f0-b581-0c4f9e2d6a78
select id, campaign_id, donor, amount, created_at
from donations
where id = $1::text;
`

const QListDonationsByCampaign = `--sql 8f1c5b39-74ae-4d82-9607-e3a2d8c1f954
select id, campaign_id, donor, amount, created_at
from donations
where campaign_id = $1::text
order by created_at;
`

const QListDonationsByDonor = `--sql d7a4e890-3c26-41fb-85d9-b1f6c0e73a28
select id, campaign_id, donor, amount, created_at
from donations
where campaign_id = $1::text and donor = $2::text
order by created_at;
`

const QDeleteDonation = `--sql 26e9c3f7-b815-4a60-97dc-480f5d2ae1b3
delete from donations
where id = $1::text;
`
